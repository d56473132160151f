package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/domain"
	"github.com/Dele-Oyelese/Brittania-Brewing-application/internal/repository"
)

const pollBatchSize = 100

// OutboxSource is the slice of the repository the poller reads from.
type OutboxSource interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*repository.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

// OutboxPoller drains committed order-created events and hands them to the
// dispatcher. An event is marked processed only after dispatch succeeds, so
// a broker outage just delays notifications instead of dropping them.
type OutboxPoller struct {
	tick       time.Duration
	source     OutboxSource
	dispatcher *Dispatcher
}

func NewOutboxPoller(source OutboxSource, dispatcher *Dispatcher) *OutboxPoller {
	return &OutboxPoller{
		tick:       time.Second,
		source:     source,
		dispatcher: dispatcher,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.source.GetUnprocessedEvents(ctx, pollBatchSize)
	if err != nil {
		log.Printf("failed to fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		var order domain.Order
		if err := json.Unmarshal(event.Payload, &order); err != nil {
			// An unreadable payload will never dispatch; drop it instead
			// of blocking the queue.
			log.Printf("failed to unmarshal outbox event id=%d: %v", event.ID, err)
			if errMark := p.source.MarkEventAsProcessed(ctx, event.ID); errMark != nil {
				log.Printf("failed to mark bad event id=%d: %v", event.ID, errMark)
			}
			continue
		}

		if errNotify := p.dispatcher.Notify(ctx, &order); errNotify != nil {
			log.Printf("dispatch failed for event id=%d order=%s: %v", event.ID, order.OrderNumber, errNotify)
			continue
		}

		if errMark := p.source.MarkEventAsProcessed(ctx, event.ID); errMark != nil {
			log.Printf("failed to mark event as processed id=%d: %v", event.ID, errMark)
		}
	}
}
