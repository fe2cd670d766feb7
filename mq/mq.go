package mq

import (
	"context"
	"encoding/json"
	"log"

	"tripandtreat/models"
	"tripandtreat/rdx"
	"tripandtreat/search"
)

const channel = "indexing-events"

// Emit publishes an indexing event to Redis; the indexing worker picks
// it up asynchronously. Failures are logged, never surfaced; indexing
// lag must not fail the originating request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[mq] failed to marshal %s event: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish %s event: %v", eventName, err)
	}
}

// StartIndexingWorker subscribes to the indexing channel and keeps the
// search index in sync with catalog changes. Run it in its own goroutine.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[mq] indexing worker listening")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] failed to parse event: %v", err)
			continue
		}

		if err := search.ApplyIndexEvent(ctx, event); err != nil {
			log.Printf("[mq] indexing error for %s %s: %v", event.Method, event.EntityId, err)
		}
	}
}
