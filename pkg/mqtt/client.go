package mqtt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

var connectTimeout = 15 * time.Second

var ErrNotConnected = errors.New("mqtt client not connected")

// Handler receives the raw topic and payload of one message.
type Handler func(topic string, payload []byte)

type Subscriber interface {
	Subscribe(topic string, handler Handler) error
}

type Client struct {
	client paho.Client
}

func brokerAddress(brokerURL string) string {
	url := strings.TrimSpace(brokerURL)
	if strings.HasPrefix(url, "mqtt://") {
		url = "tcp://" + strings.TrimPrefix(url, "mqtt://")
	}
	return url
}

func Connect(brokerURL string, clientID string) (*Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerAddress(brokerURL))
	if strings.TrimSpace(clientID) == "" {
		clientID = "cct-cloud-" + time.Now().Format("150405.000")
	}
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logger().Warn("MQTT connection lost", zap.Error(err))
	}
	opts.OnConnect = func(_ paho.Client) {
		logger().Info("MQTT connected", zap.String("broker", brokerURL))
	}

	c := paho.NewClient(opts)
	tok := c.Connect()
	// with connect retry on, the token stays pending while the broker is down
	if ok := tok.WaitTimeout(connectTimeout); !ok {
		c.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect to %s timed out after %s", brokerURL, connectTimeout)
	}
	if err := tok.Error(); err != nil {
		return nil, err
	}
	return &Client{client: c}, nil
}

func (c *Client) Subscribe(topic string, handler Handler) error {
	if c == nil || c.client == nil {
		return ErrNotConnected
	}
	tok := c.client.Subscribe(topic, 1, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	tok.Wait()
	return tok.Error()
}

func (c *Client) Close() {
	if c == nil || c.client == nil {
		return
	}
	c.client.Disconnect(1000)
}
