package service

import (
	"context"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
)

// EventPublisher announces portfolio changes to interested workers.
// Publish runs on the request path and must not wait for a broker round trip.
type EventPublisher interface {
	Publish(ctx context.Context, e portfolio.ChangeEvent) error
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() EventPublisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, portfolio.ChangeEvent) error { return nil }
