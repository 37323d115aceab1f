package repository

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/model"
)

// Local keeps the whole history as one JSON array in a slot. Every write
// loads the list, prepends the new record, truncates and stores it back.
type Local struct {
	slot     adapter.Slot
	capacity int
}

// LocalOption configures Local
type LocalOption func(*Local)

// WithCapacity overrides LocalCapacity
func WithCapacity(n int) LocalOption {
	return func(l *Local) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// NewLocal creates a slot-backed repository
func NewLocal(slot adapter.Slot, opts ...LocalOption) *Local {
	l := &Local{
		slot:     slot,
		capacity: LocalCapacity,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) load(ctx context.Context) ([]*model.HistoryItem, error) {
	data, err := l.slot.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load local history")
	}
	if len(data) == 0 {
		return []*model.HistoryItem{}, nil
	}

	var items []*model.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, goerr.Wrap(err, "failed to decode local history", goerr.V("size", len(data)))
	}
	if items == nil {
		items = []*model.HistoryItem{}
	}
	return items, nil
}

func (l *Local) PutHistory(ctx context.Context, item *model.HistoryItem) error {
	if item == nil {
		return goerr.New("history item is nil")
	}

	items, err := l.load(ctx)
	if err != nil {
		return err
	}

	items = append([]*model.HistoryItem{item}, items...)
	if len(items) > l.capacity {
		items = items[:l.capacity]
	}

	data, err := json.Marshal(items)
	if err != nil {
		return goerr.Wrap(err, "failed to encode local history", goerr.V("id", item.ID))
	}
	if err := l.slot.Store(ctx, data); err != nil {
		return goerr.Wrap(err, "failed to store local history", goerr.V("id", item.ID))
	}
	return nil
}

func (l *Local) ListHistory(ctx context.Context) ([]*model.HistoryItem, error) {
	return l.load(ctx)
}

func (l *Local) GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, goerr.Wrap(ErrHistoryNotFound, "not in local history", goerr.V("id", id))
}
