package repository

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
)

const (
	// CollectionName is the remote collection and local slot name for history
	CollectionName = "divination_history"

	// LocalCapacity is the maximum number of records kept in the local slot
	LocalCapacity = 50

	// RemoteListLimit is how many records a remote list returns
	RemoteListLimit = 20
)

var (
	// ErrHistoryNotFound is returned by GetHistory when no record has the id
	ErrHistoryNotFound = goerr.New("history not found")

	// ErrRemoteStatus is returned when the remote store answers with a non-2xx status
	ErrRemoteStatus = goerr.New("unexpected remote status")
)

// Repository persists divination history
type Repository interface {
	// PutHistory saves one record
	PutHistory(ctx context.Context, item *model.HistoryItem) error

	// ListHistory returns records, newest first
	ListHistory(ctx context.Context) ([]*model.HistoryItem, error)

	// GetHistory retrieves one record by ID
	GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error)
}
