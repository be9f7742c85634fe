package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/me-api/internal/domain/portfolio"
	"github.com/khoahotran/me-api/internal/domain/profile"
	"github.com/khoahotran/me-api/pkg/apperror"
	"github.com/khoahotran/me-api/pkg/logger"
)

// OwnerID returns the id of the single profile that owns every child record,
// or a PrecursorMissing error when no profile has been created yet.
func OwnerID(ctx context.Context, profiles profile.Repository) (int64, error) {
	p, err := profiles.First(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return 0, apperror.NewPrecursorMissing("profile")
		}
		return 0, err
	}
	return p.ID, nil
}

// Notify publishes e and only logs a failure; a lost event must not fail the
// write that produced it.
func Notify(ctx context.Context, pub EventPublisher, log logger.Logger, e portfolio.ChangeEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Warn("Portfolio event dropped",
			zap.String("entity", string(e.Entity)),
			zap.String("event_type", string(e.EventType)),
			zap.Error(err),
		)
	}
}
