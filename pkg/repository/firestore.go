package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore stores history records as documents keyed by HistoryID
type Firestore struct {
	client     *firestore.Client
	collection string
	limit      int
}

type firestoreDoc struct {
	ID        string            `firestore:"id"`
	ItemName  string            `firestore:"item_name"`
	Data      model.HistoryItem `firestore:"data"`
	CreatedAt time.Time         `firestore:"created_at"`
}

// NewFirestore connects to the named database in projectID
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	if projectID == "" {
		return nil, goerr.New("firestore project is required")
	}
	if databaseID == "" {
		return nil, goerr.New("firestore database is required")
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	return &Firestore{
		client:     client,
		collection: CollectionName,
		limit:      RemoteListLimit,
	}, nil
}

// Close releases the client
func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) PutHistory(ctx context.Context, item *model.HistoryItem) error {
	if item == nil {
		return goerr.New("history item is nil")
	}

	doc := firestoreDoc{
		ID:        string(item.ID),
		ItemName:  item.Input.ItemName,
		Data:      *item,
		CreatedAt: item.CreatedAt(),
	}
	if _, err := f.client.Collection(f.collection).Doc(string(item.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put history", goerr.V("id", item.ID))
	}
	return nil
}

func (f *Firestore) ListHistory(ctx context.Context) ([]*model.HistoryItem, error) {
	iter := f.client.Collection(f.collection).
		OrderBy("created_at", firestore.Desc).
		Limit(f.limit).
		Documents(ctx)
	defer iter.Stop()

	items := []*model.HistoryItem{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history")
		}

		var doc firestoreDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode history", goerr.V("doc", snap.Ref.ID))
		}
		item := doc.Data
		items = append(items, &item)
	}
	return items, nil
}

func (f *Firestore) GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	snap, err := f.client.Collection(f.collection).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrHistoryNotFound, "not in firestore", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get history", goerr.V("id", id))
	}

	var doc firestoreDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode history", goerr.V("id", id))
	}
	return &doc.Data, nil
}
