package adapter_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/adapter"
)

func TestStorageRoundTrip(t *testing.T) {
	bucket := os.Getenv("TEST_STORAGE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_STORAGE_BUCKET must be set to run Cloud Storage tests")
	}

	ctx := context.Background()
	storage, err := adapter.NewStorage(ctx, bucket)
	gt.NoError(t, err)

	key := "omnifind-test/" + time.Now().Format("20060102T150405.000000000") + ".json"
	w, err := storage.Put(ctx, key)
	gt.NoError(t, err)
	_, err = w.Write([]byte(`[]`))
	gt.NoError(t, err)
	gt.NoError(t, w.Close())

	r, err := storage.Get(ctx, key)
	gt.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	gt.NoError(t, err)
	gt.Equal(t, string(data), `[]`)
}

func TestNewStorageRequiresBucket(t *testing.T) {
	_, err := adapter.NewStorage(context.Background(), "")
	gt.Error(t, err)
}
