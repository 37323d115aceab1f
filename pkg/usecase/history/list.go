package history

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
)

// List returns history records, newest first
func (u *UseCase) List(ctx context.Context) ([]*model.HistoryItem, error) {
	items, err := u.repo.ListHistory(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history")
	}
	return items, nil
}

// Show retrieves one record
func (u *UseCase) Show(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	if id == "" {
		return nil, goerr.New("history id is required")
	}

	item, err := u.repo.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}
