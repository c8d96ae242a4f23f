// Package dltmqtt periodically publishes parse-run summaries to an MQTT
// broker for downstream dashboards. Adapted from the teacher's
// pkg/mqtt/mqtt.go MQTTClient: same Connect/StartPublishing/ticker-loop
// shape, retargeted at a common.Summary source instead of vehicle telemetry
// and DTC codes. Publishes only aggregate post-parse statistics, never raw
// DLT bytes.
package dltmqtt

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/serebryakov7/dlt-parser/common"
)

const (
	DefaultUpdateInterval = 10 * time.Second
	DefaultBroker         = "tcp://localhost:1883"
	DefaultClientID       = "dlt-parser"
	DefaultTopic          = "dlt/summary"
)

// Config configures a Publisher.
type Config struct {
	Broker         string
	ClientID       string
	Topic          string
	UpdateInterval time.Duration
}

// Publisher connects to an MQTT broker and republishes whatever
// SummaryFunc returns on each tick.
type Publisher struct {
	config      Config
	client      mqtt.Client
	summaryFunc func() *common.Summary
	log         *logrus.Entry
	stopChan    chan struct{}
}

// New builds a Publisher that calls summaryFunc on each publish tick.
func New(config Config, summaryFunc func() *common.Summary, log *logrus.Entry) *Publisher {
	if config.ClientID == "" {
		config.ClientID = DefaultClientID
	}
	if config.Topic == "" {
		config.Topic = DefaultTopic
	}
	if config.UpdateInterval <= 0 {
		config.UpdateInterval = DefaultUpdateInterval
	}
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Publisher{
		config:      config,
		summaryFunc: summaryFunc,
		log:         log,
		stopChan:    make(chan struct{}),
	}
}

// Connect establishes the MQTT connection.
func (p *Publisher) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.config.Broker)
	opts.SetClientID(p.config.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		p.log.Info("connected to mqtt broker")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.log.WithError(err).Warn("mqtt connection lost")
	})

	p.client = mqtt.NewClient(opts)
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// StartPublishing begins the periodic publish loop in a background
// goroutine; call StopPublishing to end it.
func (p *Publisher) StartPublishing() {
	go func() {
		ticker := time.NewTicker(p.config.UpdateInterval)
		defer ticker.Stop()

		p.log.WithFields(logrus.Fields{
			"topic":    p.config.Topic,
			"interval": p.config.UpdateInterval,
		}).Info("starting mqtt summary publishing")

		for {
			select {
			case <-p.stopChan:
				return
			case <-ticker.C:
				p.publish()
			}
		}
	}()
}

// StopPublishing ends the publish loop started by StartPublishing.
func (p *Publisher) StopPublishing() {
	close(p.stopChan)
}

// Disconnect closes the MQTT connection.
func (p *Publisher) Disconnect() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

func (p *Publisher) publish() {
	summary := p.summaryFunc()
	if summary == nil {
		p.log.Debug("no summary available to publish")
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		p.log.WithError(err).Error("marshaling summary")
		return
	}

	token := p.client.Publish(p.config.Topic, 0, false, data)
	if token.Wait() && token.Error() != nil {
		p.log.WithError(token.Error()).Error("publishing summary")
		return
	}
	p.log.WithField("bytes", len(data)).Debug("published summary")
}
