package service

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrConflict           = errors.New("conflict")            // 409
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)

const publishTimeout = 5 * time.Second

func publish(ctx context.Context, p mykafka.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
