package transport

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/telemetry_bridge/internal/telemetry"
)

// publishTimeout bounds how long a mirror publish may take before the
// message is dropped. The MQTT mirror is secondary to the UDP path and
// must not stall the transmitter for long.
const publishTimeout = time.Second

// MQTT mirrors telemetry messages to a broker topic, QoS 0. It exists for
// setups where the visualization host also runs an MQTT dashboard.
type MQTT struct {
	client mqtt.Client
	topic  string
	broker string
}

func NewMQTT(broker, clientID, topic string) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTT{client: client, topic: topic, broker: broker}, nil
}

func (m *MQTT) Send(msg []byte) error {
	token := m.client.Publish(m.topic, 0, false, msg)
	if !token.WaitTimeout(publishTimeout) {
		return &telemetry.TransmitError{Dest: m.broker, Err: fmt.Errorf("publish timed out after %s", publishTimeout)}
	}
	if err := token.Error(); err != nil {
		return &telemetry.TransmitError{Dest: m.broker, Err: err}
	}
	return nil
}

func (m *MQTT) Close() { m.client.Disconnect(250) }
