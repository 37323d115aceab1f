package repository_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/repository"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
)

// mockRepository records calls and returns canned errors
type mockRepository struct {
	putErr  error
	listErr error
	getErr  error

	items    []*model.HistoryItem
	putCalls int
}

func (m *mockRepository) PutHistory(ctx context.Context, item *model.HistoryItem) error {
	m.putCalls++
	if m.putErr != nil {
		return m.putErr
	}
	m.items = append([]*model.HistoryItem{item}, m.items...)
	return nil
}

func (m *mockRepository) ListHistory(ctx context.Context) ([]*model.HistoryItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockRepository) GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, repository.ErrHistoryNotFound
}

func TestFallbackRemoteHealthy(t *testing.T) {
	ctx := context.Background()
	remote := &mockRepository{}
	local := repository.NewLocal(adapter.NewMemorySlot())
	repo := repository.NewFallback(remote, local)

	item := newItem("keys", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, item))
	gt.Equal(t, remote.putCalls, 1)

	localItems, err := local.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, localItems).Length(0)

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(1)
	gt.Equal(t, items[0].ID, item.ID)
}

func TestFallbackRemoteWriteFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logging.With(context.Background(), logging.New("warn", buf))

	remote := &mockRepository{
		putErr:  goerr.New("connection refused"),
		listErr: goerr.New("connection refused"),
	}
	local := repository.NewLocal(adapter.NewMemorySlot())
	repo := repository.NewFallback(remote, local)

	item := newItem("keys", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, item))

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(1)
	gt.Equal(t, items[0].ID, item.ID)

	gt.S(t, buf.String()).Contains("remote save failed")
	gt.S(t, buf.String()).Contains("remote list failed")
}

func TestFallbackLocalFailureSurfaces(t *testing.T) {
	ctx := logging.With(context.Background(), logging.Discard())
	remote := &mockRepository{putErr: goerr.New("down")}
	local := &mockRepository{putErr: goerr.New("disk full")}
	repo := repository.NewFallback(remote, local)

	err := repo.PutHistory(ctx, newItem("keys", time.Now()))
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("disk full")
}

func TestFallbackGet(t *testing.T) {
	ctx := logging.With(context.Background(), logging.Discard())
	onlyLocal := newItem("saved while offline", time.Now())

	remote := &mockRepository{}
	local := repository.NewLocal(adapter.NewMemorySlot())
	gt.NoError(t, local.PutHistory(ctx, onlyLocal))
	repo := repository.NewFallback(remote, local)

	t.Run("remote miss falls through to local", func(t *testing.T) {
		got, err := repo.GetHistory(ctx, onlyLocal.ID)
		gt.NoError(t, err)
		gt.Equal(t, got.ID, onlyLocal.ID)
	})

	t.Run("remote error falls through to local", func(t *testing.T) {
		remote.getErr = goerr.New("timeout")
		defer func() { remote.getErr = nil }()

		got, err := repo.GetHistory(ctx, onlyLocal.ID)
		gt.NoError(t, err)
		gt.Equal(t, got.ID, onlyLocal.ID)
	})

	t.Run("missing everywhere", func(t *testing.T) {
		_, err := repo.GetHistory(ctx, model.NewHistoryID())
		gt.True(t, errors.Is(err, repository.ErrHistoryNotFound))
	})
}
