package repository_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/repository"
)

func newItem(name string, at time.Time) *model.HistoryItem {
	return model.NewHistoryItem(
		model.Input{
			ItemName:     name,
			LostLocation: "Home",
			Direction:    model.DirectionNorth,
			LostTime:     "2024-06-15T10:30",
		},
		model.Result{
			Summary:     "summary of " + name,
			SummaryEn:   "summary of " + name,
			Probability: 45,
			Lang:        model.LanguageEnglish,
		},
		at,
	)
}

func TestLocalEmpty(t *testing.T) {
	repo := repository.NewLocal(adapter.NewMemorySlot())

	items, err := repo.ListHistory(context.Background())
	gt.NoError(t, err)
	gt.V(t, items).NotNil()
	gt.A(t, items).Length(0)
}

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLocal(adapter.NewFileSlot(filepath.Join(t.TempDir(), "h.json")))

	item := newItem("keys", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, item))

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(1)
	gt.Equal(t, items[0], item)

	got, err := repo.GetHistory(ctx, item.ID)
	gt.NoError(t, err)
	gt.Equal(t, got, item)
}

func TestLocalNewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLocal(adapter.NewMemorySlot())

	base := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	var saved []*model.HistoryItem
	for i := 0; i < repository.LocalCapacity+1; i++ {
		item := newItem(fmt.Sprintf("item-%02d", i), base.Add(time.Duration(i)*time.Minute))
		saved = append(saved, item)
		gt.NoError(t, repo.PutHistory(ctx, item))
	}

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(repository.LocalCapacity)

	// newest first, the very first save evicted
	gt.Equal(t, items[0].ID, saved[len(saved)-1].ID)
	gt.Equal(t, items[len(items)-1].ID, saved[1].ID)

	_, err = repo.GetHistory(ctx, saved[0].ID)
	gt.True(t, errors.Is(err, repository.ErrHistoryNotFound))
}

func TestLocalWithCapacity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLocal(adapter.NewMemorySlot(), repository.WithCapacity(2))

	for _, name := range []string{"a", "b", "c"} {
		gt.NoError(t, repo.PutHistory(ctx, newItem(name, time.Now())))
	}

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(2)
	gt.Equal(t, items[0].Input.ItemName, "c")
	gt.Equal(t, items[1].Input.ItemName, "b")
}

func TestLocalCorruptSlot(t *testing.T) {
	ctx := context.Background()
	slot := adapter.NewMemorySlot()
	gt.NoError(t, slot.Store(ctx, []byte("{not json")))

	repo := repository.NewLocal(slot)
	_, err := repo.ListHistory(ctx)
	gt.Error(t, err)

	// a corrupt slot is reported, not silently overwritten
	err = repo.PutHistory(ctx, newItem("keys", time.Now()))
	gt.Error(t, err)

	data, err := slot.Load(ctx)
	gt.NoError(t, err)
	gt.Equal(t, string(data), "{not json")
}

func TestLocalSQLite(t *testing.T) {
	ctx := context.Background()
	slot, err := adapter.OpenSQLiteSlot(ctx, filepath.Join(t.TempDir(), "h.db"), repository.CollectionName)
	gt.NoError(t, err)
	defer slot.Close()

	repo := repository.NewLocal(slot)
	first := newItem("wallet", time.Now())
	second := newItem("phone", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, first))
	gt.NoError(t, repo.PutHistory(ctx, second))

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(2)
	gt.Equal(t, items[0].ID, second.ID)
	gt.Equal(t, items[1].ID, first.ID)
}

func TestLocalPutNil(t *testing.T) {
	repo := repository.NewLocal(adapter.NewMemorySlot())
	gt.Error(t, repo.PutHistory(context.Background(), nil))
}
