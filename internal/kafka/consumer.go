// Package kafka consumes problem lifecycle events from the complaint API and
// hands them to the notification facade.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/models"
	"ward26-notification-service/internal/notification"
)

const (
	eventSubmitted = "submitted"
	eventResolved  = "resolved"
)

// problemEvent is the wire shape produced by the complaint API.
type problemEvent struct {
	Event   string               `json:"event"`
	Problem models.ProblemNotice `json:"problem"`
}

type Consumer struct {
	reader *kafkago.Reader
	svc    *notification.Service
	logger *logging.Logger
}

func NewConsumer(broker, topic, groupID string, svc *notification.Service, logger *logging.Logger) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
	return &Consumer{reader: reader, svc: svc, logger: logger}
}

// Start launches the consume loop. It exits when ctx is cancelled or the
// reader is closed.
func (c *Consumer) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Infof("Kafka consumer started")
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					c.logger.Infof("Kafka consumer stopped")
					return
				}
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}
			c.handleMessage(msg.Value)
		}
	}()
}

func (c *Consumer) handleMessage(value []byte) {
	ev, err := decodeProblemEvent(value)
	if err != nil {
		c.logger.Errorf("Unmarshal message failed: %v", err)
		return
	}

	switch ev.Event {
	case eventSubmitted:
		c.svc.Dispatch(ev.Problem)
	case eventResolved:
		c.svc.DispatchSolved(ev.Problem)
	default:
		c.logger.Warnf("Unknown problem event type %q for %s", ev.Event, ev.Problem.ComplaintID)
	}
	c.logger.Infof("Processed %s event for %s", ev.Event, ev.Problem.ComplaintID)
}

func decodeProblemEvent(value []byte) (problemEvent, error) {
	var ev problemEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return ev, err
	}
	if ev.Event == "" || ev.Problem.ComplaintID == "" {
		return ev, fmt.Errorf("invalid problem event: missing event or complaint_id")
	}
	return ev, nil
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Kafka reader close failed: %v", err)
	}
}
