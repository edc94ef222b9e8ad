package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/metrics"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"go.uber.org/zap"
)

// Source is the session owner the poller reads through.
type Source interface {
	Connect(ctx context.Context) error
	Session() (*sunspec.Session, error)
	Inventory() (types.Inventory, error)
}

// Sample is one decoded register of one node.
type Sample struct {
	Node     string        `json:"node"`
	Register string        `json:"register"`
	Port     *int          `json:"port,omitempty"`
	Units    string        `json:"units,omitempty"`
	Value    sunspec.Value `json:"value"`
	Text     string        `json:"text"`
	Error    string        `json:"error,omitempty"`
}

// Snapshot is the result of one poll cycle.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	SerialID  string    `json:"serial_id"`
	ReadAt    time.Time `json:"read_at"`
	Samples   []Sample  `json:"samples"`
}

// Sink receives every completed snapshot.
type Sink interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, snap Snapshot) error

func (f SinkFunc) Publish(ctx context.Context, snap Snapshot) error { return f(ctx, snap) }

type Poller struct {
	source      Source
	interval    time.Duration
	retryAfter  time.Duration
	registers   []string
	logger      *zap.Logger
	sinks       []Sink
	stopChan    chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.Mutex
	last        *Snapshot
	lastAttempt time.Time
}

// NewPoller polls the inventory watch lists every interval. When registers is
// not empty it replaces the watch lists. A lost session is reopened at most
// once per retryAfter.
func NewPoller(source Source, interval, retryAfter time.Duration, registers []string, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		source:     source,
		interval:   interval,
		retryAfter: retryAfter,
		registers:  registers,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// AddSink registers a consumer of poll snapshots. Call before Start.
func (p *Poller) AddSink(s Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sinks = append(p.sinks, s)
}

// Start startet das zyklische Polling
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	p.running = true
	p.wg.Add(1)

	go p.pollLoop()

	p.logger.Info("Poller started", zap.Duration("interval", p.interval))

	return nil
}

// Stop stoppt das Polling
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	p.mu.Lock()
	p.running = false
	p.stopChan = make(chan struct{})
	p.mu.Unlock()

	p.logger.Info("Poller stopped")
}

func (p *Poller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.interval)
			if _, err := p.Poll(ctx); err != nil {
				p.logger.Warn("Poll cycle failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// Poll runs one cycle, hands the snapshot to every sink and returns it.
// Register level errors are recorded in the samples; a transport error ends
// the cycle.
func (p *Poller) Poll(ctx context.Context) (*Snapshot, error) {
	session, err := p.session(ctx)
	if err != nil {
		metrics.PollCycles.WithLabelValues("no_session").Inc()
		return nil, err
	}
	inv, err := p.source.Inventory()
	if err != nil {
		metrics.PollCycles.WithLabelValues("no_session").Inc()
		return nil, err
	}

	snap := &Snapshot{
		SessionID: session.ID(),
		SerialID:  inv.SerialID,
		ReadAt:    time.Now().UTC(),
		Samples:   make([]Sample, 0),
	}

	for _, target := range p.targets(inv) {
		var opts []sunspec.AccessOption
		if target.port != nil {
			opts = append(opts, sunspec.OnPort(*target.port))
		}

		sample := Sample{Node: target.node, Register: target.register, Port: target.port}
		if fd, ok := lookup(session, target.register); ok {
			sample.Units = fd.Units
		}

		v, err := session.GetOne(ctx, target.register, opts...)
		if err != nil {
			if errors.Is(err, sunspec.ErrTransport) || errors.Is(err, sunspec.ErrSessionClosed) {
				metrics.PollCycles.WithLabelValues("transport_error").Inc()
				return nil, err
			}
			p.logger.Debug("Poll read failed",
				zap.String("node", target.node),
				zap.String("register", target.register),
				zap.Error(err))
			sample.Error = err.Error()
		} else {
			sample.Value = v
			sample.Text = v.String()
		}
		snap.Samples = append(snap.Samples, sample)
	}

	p.mu.Lock()
	p.last = snap
	sinks := append([]Sink(nil), p.sinks...)
	p.mu.Unlock()

	for _, s := range sinks {
		if err := s.Publish(ctx, *snap); err != nil {
			p.logger.Error("Failed to publish snapshot", zap.Error(err))
		}
	}

	metrics.PollCycles.WithLabelValues("ok").Inc()
	return snap, nil
}

func (p *Poller) session(ctx context.Context) (*sunspec.Session, error) {
	session, err := p.source.Session()
	if err == nil && session.IsOpen() {
		return session, nil
	}

	p.mu.Lock()
	wait := time.Since(p.lastAttempt) < p.retryAfter
	if !wait {
		p.lastAttempt = time.Now()
	}
	p.mu.Unlock()
	if wait {
		if err == nil {
			err = sunspec.ErrSessionClosed
		}
		return nil, err
	}

	if session != nil {
		p.logger.Info("Session lost, reconnecting")
	}
	if err := p.source.Connect(ctx); err != nil {
		return nil, err
	}
	return p.source.Session()
}

type target struct {
	node     string
	register string
	port     *int
}

func (p *Poller) targets(inv types.Inventory) []target {
	if len(p.registers) > 0 {
		out := make([]target, 0, len(p.registers))
		for _, r := range p.registers {
			out = append(out, target{node: inv.Controller.Address, register: r})
		}
		return out
	}

	var out []target
	for _, n := range inv.All() {
		for _, r := range n.Registers {
			out = append(out, target{node: n.Address, register: r, port: n.Port})
		}
	}
	return out
}

func lookup(s *sunspec.Session, name string) (sunspec.FieldDescriptor, bool) {
	model, err := sunspec.ResolveModel(name, s.Deployment().Phase)
	if err != nil {
		return sunspec.FieldDescriptor{}, false
	}
	return s.Registry().Lookup(model, name)
}

// Last returns the most recent snapshot.
func (p *Poller) Last() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Snapshot{}, false
	}
	return *p.last, true
}

// IsRunning gibt an ob Poller läuft
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
