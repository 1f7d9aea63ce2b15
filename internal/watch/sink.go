package watch

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gen2brain/beeep"
	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
)

// Sink receives every event the watcher emits.
type Sink interface {
	Handle(e Event) error
	Close() error
}

// Notifier shows a desktop notification when the track changes or the
// player becomes unreachable.
type Notifier struct {
	notify func(title, message, icon string) error
}

// NewNotifier creates a desktop notifier.
func NewNotifier() *Notifier {
	return &Notifier{notify: beeep.Notify}
}

// Handle implements Sink.
func (n *Notifier) Handle(e Event) error {
	var title string
	switch e.Type {
	case EventTrackChange:
		title = "Now playing"
		if e.Current != nil && e.Current.State == core.StatePause {
			title += " [PAUSE]"
		}
	case EventError:
		title = "Player error"
	default:
		return nil
	}

	if err := n.notify(title, body(e), ""); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	return nil
}

// Close implements Sink.
func (n *Notifier) Close() error {
	return nil
}

func body(e Event) string {
	if e.Type == EventTrackChange && e.Current != nil {
		return songLine(e.Current.Song.Artist, e.Current.Song.Title)
	}
	return Describe(e)
}

// Payload is the JSON document published for each event. Event and
// Timestamp are left out of its hash, which identifies the player state.
type Payload struct {
	Event     string    `json:"event" hash:"ignore"`
	Timestamp time.Time `json:"timestamp" hash:"ignore"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	State     string    `json:"state,omitempty"`
	Random    bool      `json:"random"`
	Repeat    bool      `json:"repeat"`
	Error     string    `json:"error,omitempty"`
}

// NewPayload builds the published document for e. Error events carry the
// last known song.
func NewPayload(e Event) Payload {
	p := Payload{
		Event:     eventTypeName(e.Type),
		Timestamp: e.Timestamp.UTC(),
	}
	snapshot := e.Current
	if snapshot == nil {
		snapshot = e.Previous
	}
	if snapshot != nil {
		p.Title = snapshot.Song.Title
		p.Artist = snapshot.Song.Artist
		p.State = string(snapshot.State)
		p.Random = snapshot.Random
		p.Repeat = snapshot.Repeat
	}
	if e.Type == EventError && e.Failure != nil {
		p.Error = Describe(e)
	}
	return p
}

// broker is the slice of an MQTT client the publisher needs.
type broker interface {
	publish(topic string, payload []byte) error
	disconnect()
}

const (
	mqttTimeout = 5 * time.Second
	mqttQuiesce = 250
)

type pahoBroker struct {
	client mqtt.Client
}

func (b *pahoBroker) publish(topic string, payload []byte) error {
	token := b.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(mqttTimeout) {
		return errors.New("mqtt publish timed out")
	}
	return token.Error()
}

func (b *pahoBroker) disconnect() {
	b.client.Disconnect(mqttQuiesce)
}

// Publisher publishes retained now-playing documents to an MQTT topic.
// A document describing the same state as the last one published is skipped.
type Publisher struct {
	broker broker
	topic  string
	logger *zap.Logger

	published bool
	lastHash  uint64
}

// NewPublisher connects to the configured broker.
func NewPublisher(cfg config.MQTTConfig, logger *zap.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", zap.Error(err))
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return nil, fmt.Errorf("timed out connecting to mqtt broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}

	logger.Info("connected to mqtt broker", zap.String("broker", cfg.Broker), zap.String("topic", cfg.Topic))
	return &Publisher{broker: &pahoBroker{client: client}, topic: cfg.Topic, logger: logger}, nil
}

// Handle implements Sink.
func (p *Publisher) Handle(e Event) error {
	doc := NewPayload(e)

	hash, err := hashstructure.Hash(doc, hashstructure.FormatV2, nil)
	if err != nil {
		p.logger.Warn("failed to hash payload", zap.Error(err))
	} else if p.published && hash == p.lastHash {
		p.logger.Debug("state unchanged, skipping publish", zap.Stringer("type", e.Type))
		return nil
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := p.broker.publish(p.topic, payload); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	p.published = true
	p.lastHash = hash
	p.logger.Debug("published event", zap.String("topic", p.topic), zap.Stringer("type", e.Type))
	return nil
}

// Close implements Sink.
func (p *Publisher) Close() error {
	p.broker.disconnect()
	return nil
}
