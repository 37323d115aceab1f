package history

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/adapter"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
)

// ExportKey builds the object key for a snapshot taken at now
func ExportKey(prefix string, now time.Time) string {
	name := "divination_history_" + now.UTC().Format("20060102T150405Z") + ".json"
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Export writes the current history list as one JSON array to storage and
// returns the object key
func (u *UseCase) Export(ctx context.Context, storage adapter.Storage, prefix string, now time.Time) (string, error) {
	items, err := u.List(ctx)
	if err != nil {
		return "", err
	}

	key := ExportKey(prefix, now)
	w, err := storage.Put(ctx, key)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open export object", goerr.V("key", key))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write export", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to commit export", goerr.V("key", key))
	}

	logging.From(ctx).Info("history exported", "key", key, "count", len(items))
	return key, nil
}
