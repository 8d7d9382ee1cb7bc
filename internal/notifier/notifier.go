package notifier

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

// Dispatcher delivers a created match to interested parties. The search
// loop treats dispatch as fire-and-forget: a delivery failure is logged
// by the caller and never affects the scan.
type Dispatcher interface {
	NotifyMatch(ctx context.Context, match *models.Match, lost *models.LostItem, found *models.FoundItem) error
}

// MultiDispatcher fans a notification out to several channels. Every
// channel is attempted; errors are collected, not short-circuited.
type MultiDispatcher struct {
	dispatchers []Dispatcher
	logger      *zap.Logger
}

// NewMultiDispatcher combines notification channels. Nil entries are skipped.
func NewMultiDispatcher(logger *zap.Logger, dispatchers ...Dispatcher) *MultiDispatcher {
	active := make([]Dispatcher, 0, len(dispatchers))
	for _, d := range dispatchers {
		if d != nil {
			active = append(active, d)
		}
	}
	return &MultiDispatcher{dispatchers: active, logger: logger}
}

func (m *MultiDispatcher) NotifyMatch(ctx context.Context, match *models.Match, lost *models.LostItem, found *models.FoundItem) error {
	var errs []error
	for _, d := range m.dispatchers {
		if err := d.NotifyMatch(ctx, match, lost, found); err != nil {
			m.logger.Error("Notification channel failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
