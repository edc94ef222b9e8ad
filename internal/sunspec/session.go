package sunspec

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// serialIDLength is the length of the external node address derived from C_SerialNumber.
const serialIDLength = 14

// Session is one verified connection to an AXS Port or SunSpec device.
// All methods are serialized on the session mutex.
type Session struct {
	mu sync.Mutex

	id       string
	conn     Conn
	logger   *zap.Logger
	registry *Registry
	base     uint16
	openedAt time.Time

	transform  WordTransform
	obf        ObfuscationState
	devices    []Device
	deployment Deployment
	closed     bool
}

// Option configures a Session before it opens.
type Option func(*Session)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTransform sets the de-obfuscation transform used by the identifier fallback.
func WithTransform(t WordTransform) Option {
	return func(s *Session) {
		s.transform = t
	}
}

func WithRegistry(r *Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithBaseAddress overrides the address of the first model header.
func WithBaseAddress(base uint16) Option {
	return func(s *Session) {
		s.base = base
	}
}

// Open opens conn when needed, verifies the identifier, walks the model chain
// and classifies the deployment. conn is closed again when any step fails.
func Open(ctx context.Context, conn Conn, opts ...Option) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		conn:     conn,
		logger:   zap.NewNop(),
		registry: DefaultRegistry(),
		base:     ChainBaseAddress,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !conn.IsOpen() {
		if err := conn.Open(); err != nil {
			return nil, fmt.Errorf("%w: open connection: %w", ErrTransport, err)
		}
	}

	if err := s.discoverAndClassify(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	s.openedAt = time.Now()
	return s, nil
}

func (s *Session) discoverAndClassify(ctx context.Context) error {
	obf, err := Detect(ctx, s.conn, s.transform)
	if err != nil {
		return fmt.Errorf("failed to verify SunSpec identifier: %w", err)
	}
	s.obf = obf

	devices, err := Discover(ctx, s.conn, s.base, obf, s.registry)
	if err != nil {
		return fmt.Errorf("failed to discover devices: %w", err)
	}
	s.devices = devices
	s.deployment = Classify(devices, obf)

	for _, d := range devices {
		fields := []zap.Field{
			zap.Int("index", d.Index),
			zap.Uint16("model", uint16(d.Model)),
			zap.String("name", d.Model.String()),
			zap.Uint16("base_address", d.BaseAddress),
			zap.Uint16("length", d.Length),
		}
		if d.Port != nil {
			fields = append(fields, zap.Int("port", *d.Port))
		}
		if d.StackingMode != nil {
			fields = append(fields, zap.Int("stacking_mode", *d.StackingMode), zap.String("role", string(d.Role())))
		}
		s.logger.Info("Discovered SunSpec device", fields...)
	}

	s.logger.Info("Deployment classified",
		zap.String("session_id", s.id),
		zap.String("phase", string(s.deployment.Phase)),
		zap.String("family", string(s.deployment.Family)),
		zap.Bool("has_addon", s.deployment.HasAddon),
		zap.Bool("obfuscated", s.deployment.Obfuscated),
		zap.Int("devices", len(devices)))

	return nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) OpenedAt() time.Time { return s.openedAt }

func (s *Session) Registry() *Registry { return s.registry }

// Devices returns a copy of the discovered device list.
func (s *Session) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Device(nil), s.devices...)
}

func (s *Session) Deployment() Deployment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deployment
}

// IsOpen reports whether the session is usable and its transport still open.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.conn.IsOpen()
}

func (s *Session) resolve(name string, port *int) (Device, FieldDescriptor, error) {
	if s.closed {
		return Device{}, FieldDescriptor{}, ErrSessionClosed
	}

	model, err := ResolveModel(name, s.deployment.Phase)
	if err != nil {
		return Device{}, FieldDescriptor{}, err
	}
	fd, ok := s.registry.Lookup(model, name)
	if !ok {
		return Device{}, FieldDescriptor{}, fmt.Errorf("%w: %s not in model %d", ErrUnknownRegister, name, model)
	}
	dev, ok := findDevice(s.devices, model, port)
	if !ok {
		return Device{}, FieldDescriptor{}, noSuchDevice(model, port)
	}
	return dev, fd, nil
}

// GetOne reads and decodes the logical register name.
func (s *Session) GetOne(ctx context.Context, name string, opts ...AccessOption) (Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := newAccessConfig(opts)
	dev, fd, err := s.resolve(name, cfg.port)
	if err != nil {
		return Value{}, err
	}

	v, err := readField(ctx, s.conn, dev, fd, s.obf)
	if err != nil {
		return Value{}, err
	}

	s.logger.Debug("Register read",
		zap.String("register", name),
		zap.Uint16("address", fd.Address(dev.BaseAddress)),
		zap.Stringer("value", v))
	return v, nil
}

// SetOne scales value for uom and writes it to the first register of name.
// A failed write is reported as ErrWriteFailed and is not retried.
func (s *Session) SetOne(ctx context.Context, name string, value float64, uom UOM, opts ...AccessOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := newAccessConfig(opts)
	dev, fd, err := s.resolve(name, cfg.port)
	if err != nil {
		return err
	}

	word, err := EncodeWord(value, uom)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	address := fd.Address(dev.BaseAddress)
	if err := s.conn.WriteSingleRegister(ctx, address, word); err != nil {
		return fmt.Errorf("%w: %s at %d: %w", ErrWriteFailed, name, address, err)
	}

	s.logger.Debug("Register written",
		zap.String("register", name),
		zap.Uint16("address", address),
		zap.Uint16("word", word))
	return nil
}

// GetAll decodes every field of model on the device matching the port option.
func (s *Session) GetAll(ctx context.Context, model ModelID, opts ...AccessOption) ([]Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	cfg := newAccessConfig(opts)
	fields := s.registry.Fields(model)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no table for model %d", ErrUnknownRegister, model)
	}
	dev, ok := findDevice(s.devices, model, cfg.port)
	if !ok {
		return nil, noSuchDevice(model, cfg.port)
	}

	words, err := readBlock(ctx, s.conn, dev, fields)
	if err != nil {
		return nil, err
	}

	readings := make([]Reading, 0, len(fields))
	for _, fd := range fields {
		start := int(fd.Offset) - 1
		v, err := Decode(words[start:start+int(fd.Length)], fd, s.obf)
		if err != nil {
			return nil, err
		}
		readings = append(readings, Reading{
			Name:    fd.Name,
			Model:   model,
			Port:    dev.Port,
			Address: fd.Address(dev.BaseAddress),
			Units:   fd.Units,
			Value:   v,
			Text:    v.String(),
		})
	}
	return readings, nil
}

// SerialID returns the common model serial number as a lower-case 14 character id.
func (s *Session) SerialID(ctx context.Context) (string, error) {
	v, err := s.GetOne(ctx, "C_SerialNumber")
	if err != nil {
		return "", err
	}
	serial := []rune(strings.Trim(v.String(), "\x00 "))
	if len(serial) > serialIDLength {
		serial = serial[:serialIDLength]
	}
	return strings.ToLower(string(serial)), nil
}

// ReleaseControl hands control back to the AXS Port after setup writes.
func (s *Session) ReleaseControl(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if err := s.conn.WriteSingleRegister(ctx, ControlReleaseAddress, 0xFFFF); err != nil {
		return fmt.Errorf("%w: release control at %d: %w", ErrWriteFailed, ControlReleaseAddress, err)
	}
	return nil
}

// Close discards the device list and closes the transport.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.devices = nil

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	s.logger.Info("Session closed", zap.String("session_id", s.id))
	return nil
}
