// Package mqtt ingests temperature updates published by devices that push
// over a broker instead of calling the REST API. Each device publishes to its
// own topic, e.g. cct/CCT-AB12-CD34/temperature, with a JSON body carrying
// its API key.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

var (
	ErrTopic       = errors.New("topic does not match subscription")
	ErrRateLimited = errors.New("rate limit exceeded")
)

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameMQTTIngest)
}

type probeReading struct {
	ProbeID     *string  `zog:"probe_id"`
	Temperature *float64 `zog:"temperature"`
}

type temperatureMessage struct {
	APIKey             string         `zog:"api_key"`
	Readings           []probeReading `zog:"readings"`
	AverageTemperature *float64       `zog:"average_temperature"`
}

var temperatureMessageSchema = z.Struct(z.Shape{
	"APIKey": z.String().Required(),
	"readings": z.Slice(z.Struct(z.Shape{
		"probeID":     z.Ptr(z.String()),
		"temperature": z.Ptr(z.Float64()),
	})),
	"averageTemperature": z.Ptr(z.Float64()),
})

type Ingestor struct {
	Cct              *cct.CCT
	RateLimiterStore *cct.RateLimiterStore
	Topic            string
}

// deviceIDFromTopic returns the topic segment sitting where the subscription
// pattern has its single-level wildcard.
func deviceIDFromTopic(pattern string, topic string) (string, error) {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return "", ErrTopic
	}

	deviceID := ""
	for i := range want {
		switch want[i] {
		case "+":
			deviceID = got[i]
		default:
			if want[i] != got[i] {
				return "", ErrTopic
			}
		}
	}
	if deviceID == "" {
		return "", ErrTopic
	}
	return deviceID, nil
}

func (in *Ingestor) checkDeviceLimiter(deviceID string) bool {
	if in.RateLimiterStore == nil {
		return true
	}
	return in.RateLimiterStore.Allow(deviceID)
}

// HandleMessage authenticates and stores one published update.
func (in *Ingestor) HandleMessage(topic string, payload []byte) (*cct.TemperatureUpdateResult, error) {
	deviceID, err := deviceIDFromTopic(in.Topic, topic)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, topic)
	}

	if !in.checkDeviceLimiter(deviceID) {
		return nil, ErrRateLimited
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", cct.ErrValidation, err)
	}

	var msg temperatureMessage
	if errs := temperatureMessageSchema.Parse(data, &msg); errs != nil {
		return nil, fmt.Errorf("%w: %v", cct.ErrValidation, errs)
	}

	if err := in.Cct.Credential.VerifyDeviceAPIKey(msg.APIKey, deviceID); err != nil {
		return nil, err
	}

	return in.Cct.Temperature.ProcessTemperatureUpdate(&cct.TemperatureUpdate{
		DeviceID: deviceID,
		Readings: common.Mapper(msg.Readings, func(r probeReading) cct.ProbeReading {
			return cct.ProbeReading{ProbeID: r.ProbeID, Temperature: r.Temperature}
		}),
		AverageTemperature: msg.AverageTemperature,
	})
}

// Run subscribes to the ingest topic. Failures are logged per message, a
// bad publish never stops the subscription.
func (in *Ingestor) Run(sub Subscriber) error {
	return sub.Subscribe(in.Topic, func(topic string, payload []byte) {
		result, err := in.HandleMessage(topic, payload)
		if err != nil {
			logger().Warn("Dropped temperature message", zap.String("topic", topic), zap.Error(err))
			return
		}
		logger().Info("Ingested temperature message", zap.String("topic", topic), zap.Int("stored", result.Stored))
	})
}
