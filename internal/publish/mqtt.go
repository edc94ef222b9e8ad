package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// CommandWriter executes node commands received on the set topics.
type CommandWriter interface {
	WriteNodeRegister(ctx context.Context, address, register string, value float64) error
}

// Publisher mirrors poll snapshots to an MQTT broker and announces every
// sample once through Home Assistant discovery.
//
// Topics:
//
//	<prefix>/status                                online | offline (retained)
//	<prefix>/<serial>/inventory                    node list (retained)
//	<prefix>/<serial>/<node>/<register>            value
//	<prefix>/<serial>/<node>/set/<register>        incoming node commands
type Publisher struct {
	client    mqtt.Client
	cfg       config.MQTTConfig
	logger    *zap.Logger
	announced map[string]bool
	mu        sync.Mutex
}

// NewPublisher creates the paho client. Connect must be called before use.
func NewPublisher(cfg config.MQTTConfig, logger *zap.Logger) *Publisher {
	p := &Publisher{cfg: cfg, logger: logger, announced: make(map[string]bool)}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(5 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetWill(p.statusTopic(), "offline", byte(cfg.QoS), true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(client mqtt.Client) {
		p.logger.Info("MQTT connected", zap.String("broker", cfg.Broker))
		client.Publish(p.statusTopic(), byte(cfg.QoS), true, "online")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		p.logger.Warn("MQTT connection lost", zap.Error(err))
	}

	p.client = mqtt.NewClient(opts)
	return p
}

// NewPublisherWithClient uses an existing client.
func NewPublisherWithClient(client mqtt.Client, cfg config.MQTTConfig, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{client: client, cfg: cfg, logger: logger, announced: make(map[string]bool)}
}

func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("connecting to MQTT broker %s timed out", p.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker %s: %w", p.cfg.Broker, err)
	}
	return nil
}

// Close publishes the offline status and disconnects.
func (p *Publisher) Close() {
	if !p.client.IsConnected() {
		return
	}
	p.client.Publish(p.statusTopic(), byte(p.cfg.QoS), true, "offline").WaitTimeout(publishTimeout)
	p.client.Disconnect(250)
}

func (p *Publisher) statusTopic() string {
	return p.cfg.TopicPrefix + "/status"
}

func (p *Publisher) nodeTopic(serial, node string) string {
	return p.cfg.TopicPrefix + "/" + serial + "/" + node
}

func (p *Publisher) publish(topic string, retain bool, payload interface{}) error {
	token := p.client.Publish(topic, byte(p.cfg.QoS), retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// PublishInventory announces the node list of a freshly opened session.
func (p *Publisher) PublishInventory(inv types.Inventory) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return p.publish(p.cfg.TopicPrefix+"/"+inv.SerialID+"/inventory", true, data)
}

// Publish sends every successfully read sample of snap.
func (p *Publisher) Publish(ctx context.Context, snap monitor.Snapshot) error {
	var firstErr error
	for _, s := range snap.Samples {
		if s.Error != "" {
			continue
		}

		topic := p.nodeTopic(snap.SerialID, s.Node) + "/" + s.Register
		if err := p.announce(snap.SerialID, s, topic); err != nil && firstErr == nil {
			firstErr = err
		}

		payload, err := json.Marshal(s.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", s.Register, err)
		}
		if err := p.publish(topic, p.cfg.Retain, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type discoveryConfig struct {
	Name              string          `json:"name"`
	StateTopic        string          `json:"stat_t"`
	AvailabilityTopic string          `json:"avty_t"`
	UniqueID          string          `json:"uniq_id"`
	UnitOfMeasurement string          `json:"unit_of_meas,omitempty"`
	StateClass        string          `json:"stat_cla,omitempty"`
	Device            discoveryDevice `json:"dev"`
}

type discoveryDevice struct {
	IDs          string `json:"ids"`
	Name         string `json:"name"`
	Manufacturer string `json:"mf"`
}

var unitSymbols = map[string]string{
	"Amps":      "A",
	"Volts":     "V",
	"Watts":     "W",
	"kW":        "kW",
	"kWh":       "kWh",
	"Pct":       "%",
	"Degrees C": "°C",
	"Hz":        "Hz",
}

func (p *Publisher) announce(serial string, s monitor.Sample, stateTopic string) error {
	key := s.Node + "/" + s.Register
	p.mu.Lock()
	done := p.announced[key]
	p.announced[key] = true
	p.mu.Unlock()
	if done {
		return nil
	}

	uniqueID := strings.ToLower(serial + "_" + s.Node + "_" + s.Register)
	cfg := discoveryConfig{
		Name:              s.Register,
		StateTopic:        stateTopic,
		AvailabilityTopic: p.statusTopic(),
		UniqueID:          uniqueID,
		UnitOfMeasurement: unitSymbols[s.Units],
		Device: discoveryDevice{
			IDs:          s.Node,
			Name:         s.Node,
			Manufacturer: "OutBack Power",
		},
	}
	if s.Value.IsNumeric() {
		cfg.StateClass = "measurement"
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return p.publish("homeassistant/sensor/"+uniqueID+"/config", true, data)
}

// SubscribeCommands routes <prefix>/<serial>/<node>/set/<register> messages to w.
func (p *Publisher) SubscribeCommands(serial string, w CommandWriter) error {
	filter := p.cfg.TopicPrefix + "/" + serial + "/+/set/+"
	token := p.client.Subscribe(filter, byte(p.cfg.QoS), func(_ mqtt.Client, msg mqtt.Message) {
		p.handleCommand(w, msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("subscribe to %s timed out", filter)
	}
	return token.Error()
}

func (p *Publisher) handleCommand(w CommandWriter, topic string, payload []byte) {
	parts := strings.Split(topic, "/")
	if len(parts) < 5 || parts[len(parts)-2] != "set" {
		p.logger.Warn("Ignoring malformed command topic", zap.String("topic", topic))
		return
	}
	node := parts[len(parts)-3]
	register := parts[len(parts)-1]

	value, err := strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	if err != nil {
		p.logger.Warn("Ignoring non-numeric command",
			zap.String("topic", topic),
			zap.ByteString("payload", payload))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := w.WriteNodeRegister(ctx, node, register, value); err != nil {
		p.logger.Error("Node command failed",
			zap.String("node", node),
			zap.String("register", register),
			zap.Error(err))
	}
}
