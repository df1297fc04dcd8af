// Package publish pushes hand states and flip events to an MQTT broker
// so external consumers can react without polling the HTTP API.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ayusman/mudra/internal/handpose"
)

// Config holds the MQTT publisher configuration.
type Config struct {
	Broker   string
	ClientID string
	// BaseTopic prefixes the hands and events topics,
	// e.g. "mudra" publishes to mudra/hands and mudra/events.
	BaseTopic string
}

// DefaultConfig returns the default publisher configuration.
func DefaultConfig() Config {
	return Config{
		Broker:    "tcp://localhost:1883",
		ClientID:  "mudra-publisher",
		BaseTopic: "mudra",
	}
}

// Publisher publishes frame results to MQTT topics.
type Publisher struct {
	client mqtt.Client
	base   string
}

// Connect creates an MQTT client for the given config and connects it.
func Connect(cfg Config) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return NewWithClient(client, cfg.BaseTopic), nil
}

// NewWithClient wraps an already connected MQTT client.
func NewWithClient(client mqtt.Client, baseTopic string) *Publisher {
	if baseTopic == "" {
		baseTopic = "mudra"
	}
	return &Publisher{client: client, base: baseTopic}
}

// PublishStates publishes the per-frame hand states to <base>/hands.
// The message is retained so late subscribers see the latest frame.
func (p *Publisher) PublishStates(states []handpose.HandState) error {
	payload, err := json.Marshal(map[string]any{
		"hands":     states,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal states: %w", err)
	}

	token := p.client.Publish(p.base+"/hands", 0, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish states: %w", token.Error())
	}
	return nil
}

// PublishEvent publishes a flip event to <base>/events.
func (p *Publisher) PublishEvent(event handpose.FlipEvent) error {
	payload, err := json.Marshal(map[string]any{
		"event":     event,
		"message":   event.Message(),
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	token := p.client.Publish(p.base+"/events", 0, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish event: %w", token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
