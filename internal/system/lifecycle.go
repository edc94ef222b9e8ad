package system

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/api/rest"
	"github.com/KevinKickass/SunSpecBridge/internal/api/websocket"
	"github.com/KevinKickass/SunSpecBridge/internal/auth"
	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/interfaces"
	"github.com/KevinKickass/SunSpecBridge/internal/metrics"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/publish"
	"github.com/KevinKickass/SunSpecBridge/internal/storage"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AXSHealthService is the gRPC health service name that follows the AXS session.
const AXSHealthService = "sunspec.AXSPort"

type LifecycleManager struct {
	config        *config.Config
	storage       *storage.PostgresClient
	deviceManager *devices.Manager
	poller        *monitor.Poller
	publisher     *publish.Publisher
	authService   *auth.AuthService
	wsHub         *websocket.Hub
	logger        *zap.Logger

	restServer *rest.Server
	grpcServer *grpc.Server
	health     *health.Server
	grpcAddr   net.Addr

	stateMu      sync.RWMutex
	currentState SystemState
	lastError    string
	sessionID    string

	shutdownChan chan struct{}
	shutdownOnce sync.Once
}

// NewLifecycleManager wires the bridge. storage may be nil when the database
// is disabled. opts are passed to the device manager.
func NewLifecycleManager(
	storage *storage.PostgresClient,
	cfg *config.Config,
	logger *zap.Logger,
	opts ...devices.ManagerOption,
) (*LifecycleManager, error) {
	deviceManager, err := devices.NewManager(cfg.AXS, cfg.Profiles, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create device manager: %w", err)
	}

	authService := auth.NewAuthService(cfg.Auth, logger)

	lm := &LifecycleManager{
		config:        cfg,
		storage:       storage,
		deviceManager: deviceManager,
		poller: monitor.NewPoller(deviceManager, cfg.Poll.ShortInterval, cfg.Poll.LongInterval,
			cfg.Poll.Registers, logger),
		authService:  authService,
		wsHub:        websocket.NewHub(logger, authService),
		health:       health.NewServer(),
		logger:       logger,
		currentState: StateInitializing,
		shutdownChan: make(chan struct{}),
	}
	if cfg.MQTT.Enabled {
		lm.publisher = publish.NewPublisher(cfg.MQTT, logger)
	}

	deviceManager.OnSession(lm.onSession)
	return lm, nil
}

// Start starts the entire system
func (lm *LifecycleManager) Start() error {
	lm.logger.Info("Starting SunSpec bridge",
		zap.String("axs", lm.deviceManager.Info().Address))

	lm.setState(StateInitializing)
	metrics.Register()
	lm.health.SetServingStatus(AXSHealthService, healthpb.HealthCheckResponse_NOT_SERVING)

	go lm.wsHub.Run()

	lm.poller.AddSink(lm.wsHub)
	if lm.storage != nil {
		lm.poller.AddSink(lm.storage)
	}
	if lm.publisher != nil {
		if err := lm.publisher.Connect(); err != nil {
			// paho keeps retrying in the background
			lm.logger.Warn("MQTT broker not reachable", zap.Error(err))
		}
		lm.poller.AddSink(lm.publisher)
	}

	// Start gRPC Server (health only)
	if err := lm.startGRPCServer(); err != nil {
		lm.setError(fmt.Errorf("failed to start gRPC: %w", err))
		return err
	}

	// Start REST API Server
	if err := lm.startRESTServer(); err != nil {
		lm.setError(fmt.Errorf("failed to start REST API: %w", err))
		return err
	}

	// First session; a failure is retried by the poller
	ctx, cancel := context.WithTimeout(context.Background(), lm.connectTimeout())
	if err := lm.deviceManager.Connect(ctx); err != nil {
		lm.logger.Warn("AXS Port not available yet", zap.Error(err))
	}
	cancel()

	if err := lm.poller.Start(); err != nil {
		lm.setError(fmt.Errorf("failed to start poller: %w", err))
		return err
	}
	go lm.watchSession()

	lm.refreshState()

	lm.logger.Info("System started successfully",
		zap.Int("grpc_port", lm.config.Server.GRPCPort),
		zap.Int("http_port", lm.config.Server.HTTPPort),
		zap.Bool("mqtt", lm.publisher != nil),
		zap.Bool("database", lm.storage != nil))

	return nil
}

func (lm *LifecycleManager) connectTimeout() time.Duration {
	if lm.config.AXS.Timeout > 0 {
		return 4 * lm.config.AXS.Timeout
	}
	return 30 * time.Second
}

// onSession runs for every verified session, including reconnects.
func (lm *LifecycleManager) onSession(ctx context.Context, ev devices.SessionEvent) {
	lm.stateMu.Lock()
	previous := lm.sessionID
	lm.sessionID = ev.Info.ID
	lm.stateMu.Unlock()

	if lm.storage != nil {
		if previous != "" {
			if id, err := uuid.Parse(previous); err == nil {
				if err := lm.storage.EndSession(ctx, id, time.Now()); err != nil {
					lm.logger.Warn("Failed to close session record", zap.Error(err))
				}
			}
		}
		rec, err := storage.NewSessionRecord(ev.Info, ev.Deployment, ev.Inventory)
		if err == nil {
			err = lm.storage.SaveSession(ctx, rec)
		}
		if err != nil {
			lm.logger.Error("Failed to store session", zap.Error(err))
		}
	}

	if lm.publisher != nil {
		if err := lm.publisher.PublishInventory(ev.Inventory); err != nil {
			lm.logger.Warn("Failed to publish inventory", zap.Error(err))
		}
		if err := lm.publisher.SubscribeCommands(ev.Inventory.SerialID, lm.deviceManager); err != nil {
			lm.logger.Warn("Failed to subscribe to node commands", zap.Error(err))
		}
	}

	lm.wsHub.Broadcast(websocket.NewSessionStateMessage(ev.Info))
	lm.wsHub.Broadcast(websocket.NewInventoryMessage(ev.Inventory))
	lm.health.SetServingStatus(AXSHealthService, healthpb.HealthCheckResponse_SERVING)
}

// watchSession mirrors the session state into the gRPC health service and
// the system state until shutdown.
func (lm *LifecycleManager) watchSession() {
	interval := lm.config.Poll.ShortInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-lm.shutdownChan:
			return
		case <-ticker.C:
			lm.refreshState()
		}
	}
}

func (lm *LifecycleManager) refreshState() {
	lm.stateMu.RLock()
	current := lm.currentState
	lm.stateMu.RUnlock()
	if current != StateRunning && current != StateDegraded && current != StateInitializing {
		return
	}

	if lm.deviceManager.State() == types.StateVerified {
		lm.health.SetServingStatus(AXSHealthService, healthpb.HealthCheckResponse_SERVING)
		lm.setState(StateRunning)
		return
	}
	lm.health.SetServingStatus(AXSHealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	lm.setState(StateDegraded)
}

// Shutdown gracefully shuts down the system
func (lm *LifecycleManager) Shutdown(ctx context.Context) error {
	var shutdownErr error

	lm.shutdownOnce.Do(func() {
		lm.logger.Info("Shutting down system")

		lm.setState(StateStopping)
		close(lm.shutdownChan)

		shutdownErr = lm.gracefulShutdown(ctx)

		lm.setState(StateStopped)
	})

	return shutdownErr
}

func (lm *LifecycleManager) gracefulShutdown(ctx context.Context) error {
	// 1. Stop polling before the session goes away
	lm.poller.Stop()

	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	// 2. REST API Server graceful shutdown
	if lm.restServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := lm.restServer.Shutdown(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("rest api shutdown failed: %w", err)
			}
		}()
	}

	// 3. gRPC Server graceful stop
	if lm.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lm.logger.Info("Stopping gRPC server")
			lm.health.Shutdown()
			lm.grpcServer.GracefulStop()
		}()
	}

	// Wait for all shutdowns
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		lm.logger.Warn("Shutdown timeout, forcing stop")
		if lm.grpcServer != nil {
			lm.grpcServer.Stop()
		}
		err = fmt.Errorf("shutdown timeout exceeded")
	}
	close(errChan)
	for e := range errChan {
		if err == nil {
			err = e
		}
	}

	// 4. Close the session and its consumers
	lm.wsHub.Stop()
	if lm.publisher != nil {
		lm.publisher.Close()
	}
	lm.stateMu.RLock()
	sessionID := lm.sessionID
	lm.stateMu.RUnlock()
	if lm.storage != nil && sessionID != "" {
		if id, perr := uuid.Parse(sessionID); perr == nil {
			if eerr := lm.storage.EndSession(ctx, id, time.Now()); eerr != nil {
				lm.logger.Warn("Failed to close session record", zap.Error(eerr))
			}
		}
	}
	lm.deviceManager.Shutdown()

	if err == nil {
		lm.logger.Info("Graceful shutdown completed")
	}
	return err
}

func (lm *LifecycleManager) startGRPCServer() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", lm.config.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	lm.grpcAddr = lis.Addr()

	lm.grpcServer = grpc.NewServer()
	healthpb.RegisterHealthServer(lm.grpcServer, lm.health)
	lm.logger.Info("Health gRPC service registered", zap.String("service", AXSHealthService))

	go func() {
		lm.logger.Info("gRPC server listening",
			zap.String("address", lis.Addr().String()))
		if err := lm.grpcServer.Serve(lis); err != nil {
			lm.logger.Error("gRPC server failed", zap.Error(err))
		}
	}()

	return nil
}

func (lm *LifecycleManager) startRESTServer() error {
	lm.restServer = rest.NewServer(lm.config, lm, lm.logger, lm.wsHub, lm.authService)
	return lm.restServer.Start()
}

func (lm *LifecycleManager) setState(state SystemState) {
	lm.stateMu.Lock()
	previous := lm.currentState
	if err := ValidateTransition(previous, state); err != nil {
		lm.stateMu.Unlock()
		lm.logger.Warn("Ignoring state change", zap.Error(err))
		return
	}
	lm.currentState = state
	if state != StateError {
		lm.lastError = ""
	}
	status := lm.statusLocked()
	lm.stateMu.Unlock()

	if previous != state {
		lm.logger.Info("System state changed",
			zap.Stringer("from", previous),
			zap.Stringer("to", state))
		lm.wsHub.Broadcast(websocket.NewMessage(websocket.MessageTypeSystemStatus, status))
	}
}

func (lm *LifecycleManager) setError(err error) {
	lm.logger.Error("System error", zap.Error(err))
	lm.setState(StateError)

	lm.stateMu.Lock()
	lm.lastError = err.Error()
	lm.stateMu.Unlock()
}

func (lm *LifecycleManager) statusLocked() SystemStatus {
	return SystemStatus{
		State:     lm.currentState,
		Timestamp: time.Now().Unix(),
		Error:     lm.lastError,
	}
}

// State returns the current system state.
func (lm *LifecycleManager) State() SystemState {
	lm.stateMu.RLock()
	defer lm.stateMu.RUnlock()
	return lm.currentState
}

// GetCurrentStatus returns current system status (Interface implementation)
func (lm *LifecycleManager) GetCurrentStatus() interfaces.SystemStatus {
	lm.stateMu.RLock()
	state := lm.currentState
	lm.stateMu.RUnlock()

	status := interfaces.SystemStatus{
		State:       state.String(),
		Session:     lm.deviceManager.Info(),
		Polling:     lm.poller.IsRunning(),
		LiveClients: lm.wsHub.GetClientCount(),
	}
	if inv, err := lm.deviceManager.Inventory(); err == nil {
		status.NodeCount = len(inv.All())
	}
	if snap, ok := lm.poller.Last(); ok {
		status.LastPollAt = snap.ReadAt.Unix()
	}
	return status
}

// Health returns the gRPC health server.
func (lm *LifecycleManager) Health() *health.Server {
	return lm.health
}

// GRPCAddr is the bound gRPC listener address once started.
func (lm *LifecycleManager) GRPCAddr() net.Addr {
	return lm.grpcAddr
}

// Done is closed when shutdown begins.
func (lm *LifecycleManager) Done() <-chan struct{} {
	return lm.shutdownChan
}

// DeviceManager returns the device manager
func (lm *LifecycleManager) DeviceManager() *devices.Manager {
	return lm.deviceManager
}

// Poller returns the register poller
func (lm *LifecycleManager) Poller() *monitor.Poller {
	return lm.poller
}

// Storage returns the storage client
func (lm *LifecycleManager) Storage() *storage.PostgresClient {
	return lm.storage
}

// Config returns the configuration
func (lm *LifecycleManager) Config() *config.Config {
	return lm.config
}
