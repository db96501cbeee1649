// Package events publishes fleet status transitions to an MQTT broker so
// dashboards and downstream consumers can react without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Kind identifies a fleet status transition.
type Kind string

const (
	TripDispatched       Kind = "trip.dispatched"
	TripCompleted        Kind = "trip.completed"
	TripCancelled        Kind = "trip.cancelled"
	VehicleStatusChanged Kind = "vehicle.status_changed"
	DriverStatusChanged  Kind = "driver.status_changed"
	MaintenanceOpened    Kind = "maintenance.opened"
	MaintenanceClosed    Kind = "maintenance.closed"
)

// Event is a single fleet status transition.
type Event struct {
	Kind     Kind              `json:"kind"`
	EntityID string            `json:"entity_id"`
	Fields   map[string]string `json:"fields,omitempty"`
	At       time.Time         `json:"at"`
}

// Publisher delivers fleet events. Failures are operational, not
// transactional: callers log and continue.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MQTTPublisher implements Publisher over an MQTT broker.
type MQTTPublisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTTPublisher connects to the broker and returns a publisher rooted at
// the "fleet" topic.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{client: client, topicPrefix: "fleet"}, nil
}

// Publish sends the event as JSON on fleet/<kind>.
func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	topic := fmt.Sprintf("%s/%s", p.topicPrefix, event.Kind)
	token := p.client.Publish(topic, 0, false, payload)

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
