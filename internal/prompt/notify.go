package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"respondo.app/backend/common/logger"
	"respondo.app/backend/internal/metrics"
)

// ReloadEvent is published after a replica reloads its instruction so peers do the same.
type ReloadEvent struct {
	Origin  string `json:"origin"`
	TraceID string `json:"trace_id,omitempty"`
}

// Reloader is the part of Store the notifier drives.
type Reloader interface {
	Reload(ctx context.Context) (*Instruction, error)
}

// Notifier fans reloads out to other replicas over a Redis pub/sub channel.
type Notifier struct {
	client   *redis.Client
	channel  string
	instance string
	store    Reloader
}

func NewNotifier(client *redis.Client, channel, instance string, store Reloader) *Notifier {
	return &Notifier{client: client, channel: channel, instance: instance, store: store}
}

func (n *Notifier) Publish(ctx context.Context) error {
	payload, err := json.Marshal(ReloadEvent{
		Origin:  n.instance,
		TraceID: logger.TraceIDFromContext(ctx),
	})
	if err != nil {
		return fmt.Errorf("encoding reload event: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing reload event: %w", err)
	}

	slog.InfoContext(ctx, "reload event published", "channel", n.channel)
	return nil
}

// Run subscribes to the channel until ctx is done.
func (n *Notifier) Run(ctx context.Context) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %s: %w", n.channel, err)
	}
	slog.InfoContext(ctx, "listening for reload events", "channel", n.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			n.Handle(ctx, msg.Payload)
		}
	}
}

// Handle applies one reload event. Events published by this instance are ignored
// since the local store was already reloaded.
func (n *Notifier) Handle(ctx context.Context, payload string) {
	var event ReloadEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		slog.WarnContext(ctx, "dropping malformed reload event", "error", err, "payload", logger.Truncate(payload, 200))
		return
	}
	if event.Origin == n.instance {
		return
	}

	sc := logger.StartSpanFromTraceID(ctx, event.TraceID, "prompt.reload_event")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Component: "respondo.prompt.notifier"})

	_, err := n.store.Reload(ctx)
	metrics.RecordPromptReload("peer", err)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "reload from peer event failed", "error", err, "peer", event.Origin)
	}
}
