package repository

import (
	"context"
	"errors"

	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
)

// Fallback tries the remote store first and continues with the local store
// whenever the remote fails. The local store is never consulted when the
// remote succeeds.
type Fallback struct {
	remote Repository
	local  Repository
}

// NewFallback composes remote and local
func NewFallback(remote, local Repository) *Fallback {
	return &Fallback{remote: remote, local: local}
}

func (f *Fallback) PutHistory(ctx context.Context, item *model.HistoryItem) error {
	err := f.remote.PutHistory(ctx, item)
	if err == nil {
		return nil
	}

	logging.From(ctx).Warn("remote save failed, saving locally", "error", err, "id", item.ID)
	return f.local.PutHistory(ctx, item)
}

func (f *Fallback) ListHistory(ctx context.Context) ([]*model.HistoryItem, error) {
	items, err := f.remote.ListHistory(ctx)
	if err == nil {
		return items, nil
	}

	logging.From(ctx).Warn("remote list failed, reading local history", "error", err)
	return f.local.ListHistory(ctx)
}

func (f *Fallback) GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	item, err := f.remote.GetHistory(ctx, id)
	if err == nil {
		return item, nil
	}

	// a record saved while the remote was down only exists locally
	if !errors.Is(err, ErrHistoryNotFound) {
		logging.From(ctx).Warn("remote get failed, reading local history", "error", err, "id", id)
	}
	return f.local.GetHistory(ctx, id)
}
