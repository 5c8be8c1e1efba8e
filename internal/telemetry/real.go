package telemetry

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	retryInterval  = 5 * time.Second
)

// MQTTPublisher publishes to an actual MQTT broker.
type MQTTPublisher struct {
	client paho.Client
}

// NewMQTTPublisher creates a publisher connected to the given broker.
func NewMQTTPublisher(broker string) (*MQTTPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("ovenctl").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(retryInterval)

	client := paho.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to broker %s: timeout", broker)
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", broker, err)
	}

	return &MQTTPublisher{client: client}, nil
}

// PublishTransition sends an outer state change at QoS 0, not retained.
func (p *MQTTPublisher) PublishTransition(t Transition) error {
	payload, err := FormatTransitionPayload(t)
	if err != nil {
		return fmt.Errorf("format transition payload: %w", err)
	}

	token := p.client.Publish(TopicEvents, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish transition: timeout")
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("publish transition: %w", err)
	}

	return nil
}

// PublishSystem sends a lifecycle event at QoS 1 so shutdown notices
// survive a flaky link.
func (p *MQTTPublisher) PublishSystem(e SystemEvent) error {
	payload, err := FormatSystemPayload(e)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	token := p.client.Publish(TopicSystem, 1, e.Retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish system event: timeout")
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system event: %w", err)
	}

	return nil
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(1000)

	return nil
}
