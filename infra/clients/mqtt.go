package clients

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/core/logger"
)

func init() {
	factory.Clients.MustRegister("clients/mqtt", func(bc factory.BuildContext) (any, error) {
		var cfg MQTTConfig
		if err := factory.Decode(bc.Params, &cfg); err != nil {
			return nil, err
		}
		return NewMQTTClient(bc.Name, cfg, bc.Log)
	})
}

// MQTTConfig defines the connection parameters for the Paho MQTT client.
type MQTTConfig struct {
	Broker           string `json:"broker"`
	ClientID         string `json:"client_id"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	QoS              byte   `json:"qos"`
	ConnectTimeoutMS int    `json:"connect_timeout_ms"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewMQTTClient connects to the broker described by cfg. A missing client
// id is filled with a random one so two instances never collide.
func NewMQTTClient(name string, cfg MQTTConfig, log logger.Logger) (*PahoMQTTClient, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt client %s: broker is required", name)
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("clientry-%s", uuid.NewString())
	}
	timeout := 5 * time.Second
	if cfg.ConnectTimeoutMS > 0 {
		timeout = time.Duration(cfg.ConnectTimeoutMS) * time.Millisecond
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	cli := newMQTTClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt client %s: connect timeout after %s", name, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt client %s: connect: %w", name, err)
	}
	if log != nil {
		log.Infof("mqtt client %s connected to %s", name, cfg.Broker)
	}
	return &PahoMQTTClient{cli: cli, qos: cfg.QoS, log: log}, nil
}

// PahoMQTTClient is the constructed MQTT instance. It exposes the small
// publish surface the registry's consumers need.
type PahoMQTTClient struct {
	cli pahoClient
	qos byte
	log logger.Logger
}

// Publish sends payload to topic at the configured QoS.
func (c *PahoMQTTClient) Publish(topic string, payload []byte) error {
	token := c.cli.Publish(topic, c.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Connected reports whether the underlying client holds a live connection.
func (c *PahoMQTTClient) Connected() bool { return c.cli.IsConnected() }

// Close disconnects from the broker.
func (c *PahoMQTTClient) Close() {
	c.cli.Disconnect(250)
	if c.log != nil {
		c.log.Infof("mqtt client disconnected")
	}
}
