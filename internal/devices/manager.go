package devices

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/metrics"
	"github.com/KevinKickass/SunSpecBridge/internal/modbus"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"go.uber.org/zap"
)

var (
	ErrNotConnected     = errors.New("no verified session")
	ErrUnknownTransform = errors.New("unknown de-obfuscation transform")
)

// Dialer builds an unopened connection to the AXS Port.
type Dialer func() (sunspec.Conn, error)

// Manager owns the single session to the configured AXS Port.
type Manager struct {
	axs        config.AXSConfig
	loader     *ProfileLoader
	composer   *Composer
	registry   *sunspec.Registry
	dial       Dialer
	transforms map[string]sunspec.WordTransform

	session   *sunspec.Session
	inventory types.Inventory
	state     types.ConnectionState
	lastErr   error
	listeners []SessionListener

	mu     sync.RWMutex
	logger *zap.Logger
}

type ManagerOption func(*Manager)

// WithDialer replaces the config-driven Modbus dialer.
func WithDialer(d Dialer) ManagerOption {
	return func(m *Manager) {
		m.dial = d
	}
}

func NewManager(axs config.AXSConfig, profiles config.ProfilesConfig, logger *zap.Logger, opts ...ManagerOption) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loader, err := NewProfileLoader(profiles.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile loader: %w", err)
	}

	m := &Manager{
		axs:        axs,
		loader:     loader,
		composer:   NewComposer(logger),
		registry:   sunspec.DefaultRegistry(),
		transforms: make(map[string]sunspec.WordTransform),
		state:      types.StateDisconnected,
		logger:     logger,
	}
	m.dial = m.modbusDialer

	for _, opt := range opts {
		opt(m)
	}

	if len(profiles.Files) > 0 {
		loaded := make([]*types.RegisterProfile, 0, len(profiles.Files))
		for _, name := range profiles.Files {
			p, err := loader.Load(name)
			if err != nil {
				return nil, fmt.Errorf("failed to load profile %s: %w", name, err)
			}
			loaded = append(loaded, p)
			logger.Info("Register profile loaded",
				zap.String("profile", p.Profile.ID),
				zap.Int("models", len(p.Models)))
		}
		if m.registry, err = ApplyProfiles(m.registry, loaded...); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Manager) modbusDialer() (sunspec.Conn, error) {
	return modbus.NewConn(modbus.Config{
		Host:    m.axs.Host,
		Port:    m.axs.Port,
		UnitID:  uint8(m.axs.UnitID),
		Timeout: m.axs.Timeout,
		Driver:  modbus.Driver(m.axs.Driver),
	})
}

// RegisterTransform makes t selectable through axs.transform.
func (m *Manager) RegisterTransform(name string, t sunspec.WordTransform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transforms[name] = t
}

func (m *Manager) Registry() *sunspec.Registry {
	return m.registry
}

// SessionEvent describes a freshly verified session.
type SessionEvent struct {
	Info       types.SessionInfo
	Deployment sunspec.Deployment
	Inventory  types.Inventory
}

// SessionListener is called after every successful Connect or Reconnect,
// outside the manager lock.
type SessionListener func(ctx context.Context, ev SessionEvent)

// OnSession registers l for verified sessions.
func (m *Manager) OnSession(l SessionListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Connect opens and verifies a session unless one is already open.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.session != nil {
		if m.session.IsOpen() {
			m.mu.Unlock()
			return nil
		}
		if err := m.disconnectLocked(); err != nil {
			m.logger.Debug("Stale session close failed", zap.Error(err))
		}
	}
	err := m.connectLocked(ctx)
	m.finishLocked(ctx, err)
	return err
}

// finishLocked releases the lock and notifies listeners on success.
func (m *Manager) finishLocked(ctx context.Context, err error) {
	if err != nil {
		m.mu.Unlock()
		return
	}
	ev := SessionEvent{
		Info:       m.infoLocked(types.StateVerified),
		Deployment: m.session.Deployment(),
		Inventory:  m.inventory,
	}
	listeners := append([]SessionListener(nil), m.listeners...)
	m.mu.Unlock()

	for _, l := range listeners {
		l(ctx, ev)
	}
}

func (m *Manager) connectLocked(ctx context.Context) error {
	started := time.Now()
	err := m.openLocked(ctx)
	devices := 0
	if m.session != nil {
		devices = len(m.session.Devices())
	}
	metrics.ObserveDiscovery(started, devices, err)

	if err != nil {
		m.state = types.StateFailed
		m.lastErr = err
		m.logger.Error("Failed to open AXS session",
			zap.String("host", m.axs.Host),
			zap.Int("port", m.axs.Port),
			zap.Error(err))
		return err
	}
	m.lastErr = nil
	return nil
}

func (m *Manager) openLocked(ctx context.Context) error {
	var transform sunspec.WordTransform
	if m.axs.Transform != "" {
		t, ok := m.transforms[m.axs.Transform]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTransform, m.axs.Transform)
		}
		transform = t
	}

	conn, err := m.dial()
	if err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}
	conn = metrics.Instrument(conn)

	if err := conn.Open(); err != nil {
		return fmt.Errorf("%w: %w", sunspec.ErrTransport, err)
	}
	m.state = types.StateOpen

	opts := []sunspec.Option{
		sunspec.WithLogger(m.logger),
		sunspec.WithRegistry(m.registry),
		sunspec.WithTransform(transform),
	}
	if m.axs.BaseAddress > 0 {
		opts = append(opts, sunspec.WithBaseAddress(uint16(m.axs.BaseAddress)))
	}

	session, err := sunspec.Open(ctx, conn, opts...)
	if err != nil {
		return err
	}

	serial, err := session.SerialID(ctx)
	if err != nil {
		m.logger.Warn("Failed to read serial number", zap.Error(err))
	}
	inventory, err := m.composer.Compose(serial, session.Deployment(), session.Devices())
	if err != nil {
		if cerr := session.Close(); cerr != nil {
			m.logger.Debug("Session close failed", zap.Error(cerr))
		}
		return err
	}

	if m.axs.ReleaseControl {
		if err := session.ReleaseControl(ctx); err != nil {
			m.logger.Warn("Failed to release control to AXS Port", zap.Error(err))
		}
	}

	m.session = session
	m.inventory = inventory
	m.state = types.StateVerified

	dep := session.Deployment()
	m.logger.Info("AXS session verified",
		zap.String("session_id", session.ID()),
		zap.String("serial_id", serial),
		zap.String("controller", dep.ControllerName()),
		zap.Int("nodes", len(inventory.Nodes)+1))
	return nil
}

// Disconnect closes the current session, if any.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disconnectLocked()
}

func (m *Manager) disconnectLocked() error {
	if m.session == nil {
		m.state = types.StateDisconnected
		return nil
	}
	err := m.session.Close()
	m.session = nil
	m.inventory = types.Inventory{}
	m.state = types.StateDisconnected
	metrics.SessionUp.Set(0)
	return err
}

// Reconnect drops the current session and runs discovery again.
func (m *Manager) Reconnect(ctx context.Context) error {
	m.mu.Lock()
	if err := m.disconnectLocked(); err != nil {
		m.logger.Warn("Error closing previous session", zap.Error(err))
	}
	err := m.connectLocked(ctx)
	m.finishLocked(ctx, err)
	return err
}

// Session returns the verified session.
func (m *Manager) Session() (*sunspec.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil, ErrNotConnected
	}
	return m.session, nil
}

func (m *Manager) State() types.ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == types.StateVerified && (m.session == nil || !m.session.IsOpen()) {
		return types.StateFailed
	}
	return m.state
}

// Info summarizes the session for status endpoints.
func (m *Manager) Info() types.SessionInfo {
	state := m.State()

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.infoLocked(state)
}

func (m *Manager) infoLocked(state types.ConnectionState) types.SessionInfo {
	info := types.SessionInfo{
		Address: modbus.Config{Host: m.axs.Host, Port: m.axs.Port}.Address(),
		Driver:  m.axs.Driver,
		State:   state,
	}
	if m.session != nil {
		opened := m.session.OpenedAt()
		info.ID = m.session.ID()
		info.SerialID = m.inventory.SerialID
		info.OpenedAt = &opened
	}
	if m.lastErr != nil {
		info.LastError = m.lastErr.Error()
	}
	return info
}

func (m *Manager) Inventory() (types.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return types.Inventory{}, ErrNotConnected
	}
	return m.inventory, nil
}

// Node returns the inventory node with the given address.
func (m *Manager) Node(address string) (types.Node, bool) {
	inv, err := m.Inventory()
	if err != nil {
		return types.Node{}, false
	}
	for _, n := range inv.All() {
		if n.Address == address {
			return n, true
		}
	}
	return types.Node{}, false
}

// Shutdown closes the session and forgets the last error.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.disconnectLocked(); err != nil {
		m.logger.Error("Error closing session", zap.Error(err))
	}
	m.lastErr = nil
}

// ErrNotWritable is returned for node commands the node does not accept.
var ErrNotWritable = errors.New("register is not a command of this node")

// WriteNodeRegister runs a node command: value is scaled by the UOM the node
// declares for register and written to the node's port.
func (m *Manager) WriteNodeRegister(ctx context.Context, address, register string, value float64) error {
	node, ok := m.Node(address)
	if !ok {
		return fmt.Errorf("%w: node %s", sunspec.ErrNoSuchDevice, address)
	}
	uom, ok := CommandUOM(node, register)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNotWritable, register, address)
	}

	session, err := m.Session()
	if err != nil {
		return err
	}

	var opts []sunspec.AccessOption
	if node.Port != nil {
		opts = append(opts, sunspec.OnPort(*node.Port))
	}
	if err := session.SetOne(ctx, register, value, uom, opts...); err != nil {
		return err
	}

	m.logger.Info("Node command written",
		zap.String("node", address),
		zap.String("register", register),
		zap.Float64("value", value),
		zap.Int("uom", int(uom)))
	return nil
}
