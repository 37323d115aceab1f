package history_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/repository"
	"github.com/m-mizutani/omnifind/pkg/usecase/history"
)

// memoryStorage is an in-memory adapter.Storage
type memoryStorage struct {
	objects map[string][]byte
	putErr  error
}

type memoryObject struct {
	bytes.Buffer
	key     string
	storage *memoryStorage
}

func (o *memoryObject) Close() error {
	o.storage.objects[o.key] = o.Bytes()
	return nil
}

func (m *memoryStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	return &memoryObject{key: key, storage: m}, nil
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, goerr.New("no such object", goerr.V("key", key))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

var _ adapter.Storage = (*memoryStorage)(nil)

func seed(t *testing.T, names ...string) (*history.UseCase, []*model.HistoryItem) {
	repo := repository.NewLocal(adapter.NewMemorySlot())
	var items []*model.HistoryItem
	for _, name := range names {
		item := model.NewHistoryItem(model.Input{ItemName: name}, model.Result{Probability: 45}, time.Now())
		gt.NoError(t, repo.PutHistory(context.Background(), item))
		items = append(items, item)
	}
	return history.New(repo), items
}

func TestList(t *testing.T) {
	uc, items := seed(t, "keys", "wallet")

	got, err := uc.List(context.Background())
	gt.NoError(t, err)
	gt.A(t, got).Length(2)
	gt.Equal(t, got[0].ID, items[1].ID)
}

func TestShow(t *testing.T) {
	uc, items := seed(t, "keys")

	got, err := uc.Show(context.Background(), items[0].ID)
	gt.NoError(t, err)
	gt.Equal(t, got.Input.ItemName, "keys")

	_, err = uc.Show(context.Background(), model.NewHistoryID())
	gt.True(t, errors.Is(err, repository.ErrHistoryNotFound))

	_, err = uc.Show(context.Background(), "")
	gt.Error(t, err)
}

func TestExport(t *testing.T) {
	uc, items := seed(t, "keys", "wallet", "umbrella")
	storage := &memoryStorage{objects: map[string][]byte{}}
	now := time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)

	key, err := uc.Export(context.Background(), storage, "backups/omnifind", now)
	gt.NoError(t, err)
	gt.Equal(t, key, "backups/omnifind/divination_history_20240615T123045Z.json")

	r, err := storage.Get(context.Background(), key)
	gt.NoError(t, err)
	defer r.Close()

	var exported []*model.HistoryItem
	gt.NoError(t, json.NewDecoder(r).Decode(&exported))
	gt.A(t, exported).Length(3)
	gt.Equal(t, exported[0].ID, items[2].ID)
}

func TestExportPutFailure(t *testing.T) {
	uc, _ := seed(t, "keys")
	storage := &memoryStorage{objects: map[string][]byte{}, putErr: goerr.New("permission denied")}

	_, err := uc.Export(context.Background(), storage, "", time.Now())
	gt.Error(t, err)
	gt.Equal(t, len(storage.objects), 0)
}

func TestExportKey(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("JST", 9*60*60))
	gt.Equal(t, history.ExportKey("", now), "divination_history_20240101T180405Z.json")
	gt.Equal(t, history.ExportKey("a/b/", now), "a/b/divination_history_20240101T180405Z.json")
}
