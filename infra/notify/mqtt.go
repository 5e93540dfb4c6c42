package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	corenotify "github.com/taskforge/allocd/core/notify"
	"github.com/taskforge/allocd/infra/logger"
)

// Config defines the connection parameters for the MQTT run publisher.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	TimeoutMS   int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "allocd"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "allocd"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("notify: broker is required")
	}
	return nil
}

// MQTTPublisher announces completed runs over MQTT.
type MQTTPublisher struct {
	cli     paho.Client
	prefix  string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

var _ corenotify.Publisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to the broker and returns the publisher.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{
		cli:     cli,
		prefix:  cfg.TopicPrefix,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		log:     logger.New("notify"),
	}, nil
}

// PublishRunCompleted publishes the event as JSON on
// <prefix>/projects/<id>/assignments.
func (p *MQTTPublisher) PublishRunCompleted(ctx context.Context, ev corenotify.RunEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode run event: %w", err)
	}
	topic := fmt.Sprintf("%s/projects/%d/assignments", p.prefix, ev.ProjectID)
	tok := p.cli.Publish(topic, p.qos, false, payload)
	if !tok.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish on %s: %w", topic, err)
	}
	p.log.Debugf("published run %s to %s", ev.RunID, topic)
	return nil
}

// Close disconnects the MQTT client.
func (p *MQTTPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
