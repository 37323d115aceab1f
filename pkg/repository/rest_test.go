package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/repository"
)

// fakeTable mimics the subset of the PostgREST API the REST remote uses
type fakeTable struct {
	mu       sync.Mutex
	rows     []map[string]json.RawMessage
	requests []*http.Request
	bodies   [][]byte
	status   int
}

func (f *fakeTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
		return
	}

	switch r.Method {
	case http.MethodPost:
		var row map[string]json.RawMessage
		if err := json.Unmarshal(body, &row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.rows = append([]map[string]json.RawMessage{row}, f.rows...)
		w.WriteHeader(http.StatusCreated)

	case http.MethodGet:
		var out []map[string]json.RawMessage
		id := r.URL.Query().Get("id")
		for _, row := range f.rows {
			if id != "" {
				var rowID string
				_ = json.Unmarshal(row["id"], &rowID)
				if "eq."+rowID != id {
					continue
				}
			}
			out = append(out, map[string]json.RawMessage{"data": row["data"]})
		}
		if out == nil {
			out = []map[string]json.RawMessage{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newRESTServer(t *testing.T) (*fakeTable, *repository.REST) {
	table := &fakeTable{}
	srv := httptest.NewServer(table)
	t.Cleanup(srv.Close)

	repo, err := repository.NewREST(srv.URL+"/", "test-key")
	gt.NoError(t, err)
	return table, repo
}

func TestRESTPutWireFormat(t *testing.T) {
	table, repo := newRESTServer(t)
	item := newItem("keys", time.Now())

	gt.NoError(t, repo.PutHistory(context.Background(), item))
	gt.A(t, table.requests).Length(1)

	req := table.requests[0]
	gt.Equal(t, req.Method, http.MethodPost)
	gt.Equal(t, req.URL.Path, "/rest/v1/divination_history")
	gt.Equal(t, req.Header.Get("apikey"), "test-key")
	gt.Equal(t, req.Header.Get("Authorization"), "Bearer test-key")
	gt.Equal(t, req.Header.Get("Content-Type"), "application/json")
	gt.Equal(t, req.Header.Get("Prefer"), "return=minimal")

	var body struct {
		ID       string            `json:"id"`
		ItemName string            `json:"item_name"`
		Data     model.HistoryItem `json:"data"`
	}
	gt.NoError(t, json.Unmarshal(table.bodies[0], &body))
	gt.Equal(t, body.ID, string(item.ID))
	gt.Equal(t, body.ItemName, "keys")
	gt.Equal(t, body.Data, *item)
}

func TestRESTListQuery(t *testing.T) {
	table, repo := newRESTServer(t)
	ctx := context.Background()

	first := newItem("keys", time.Now())
	second := newItem("wallet", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, first))
	gt.NoError(t, repo.PutHistory(ctx, second))

	items, err := repo.ListHistory(ctx)
	gt.NoError(t, err)
	gt.A(t, items).Length(2)
	gt.Equal(t, items[0].ID, second.ID)
	gt.Equal(t, items[1].ID, first.ID)

	q := table.requests[2].URL.Query()
	gt.Equal(t, q.Get("select"), "data")
	gt.Equal(t, q.Get("order"), "created_at.desc")
	gt.Equal(t, q.Get("limit"), "20")
}

func TestRESTGet(t *testing.T) {
	_, repo := newRESTServer(t)
	ctx := context.Background()

	item := newItem("keys", time.Now())
	gt.NoError(t, repo.PutHistory(ctx, item))

	got, err := repo.GetHistory(ctx, item.ID)
	gt.NoError(t, err)
	gt.Equal(t, got.ID, item.ID)

	_, err = repo.GetHistory(ctx, model.NewHistoryID())
	gt.True(t, errors.Is(err, repository.ErrHistoryNotFound))
}

func TestRESTStatusError(t *testing.T) {
	table, repo := newRESTServer(t)
	table.status = http.StatusUnauthorized
	ctx := context.Background()

	err := repo.PutHistory(ctx, newItem("keys", time.Now()))
	gt.True(t, errors.Is(err, repository.ErrRemoteStatus))

	_, err = repo.ListHistory(ctx)
	gt.True(t, errors.Is(err, repository.ErrRemoteStatus))

	_, err = repo.GetHistory(ctx, model.NewHistoryID())
	gt.True(t, errors.Is(err, repository.ErrRemoteStatus))
	gt.False(t, errors.Is(err, repository.ErrHistoryNotFound))
}

func TestRESTUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo, err := repository.NewREST(url, "k", repository.WithHTTPClient(&http.Client{Timeout: time.Second}))
	gt.NoError(t, err)

	_, err = repo.ListHistory(context.Background())
	gt.Error(t, err)
}

func TestRESTWithTable(t *testing.T) {
	table := &fakeTable{}
	srv := httptest.NewServer(table)
	defer srv.Close()

	repo, err := repository.NewREST(srv.URL, "k", repository.WithTable("other"))
	gt.NoError(t, err)
	gt.NoError(t, repo.PutHistory(context.Background(), newItem("keys", time.Now())))
	gt.Equal(t, table.requests[0].URL.Path, "/rest/v1/other")
}

func TestNewRESTValidation(t *testing.T) {
	_, err := repository.NewREST("", "k")
	gt.Error(t, err)

	_, err = repository.NewREST("http://localhost", "")
	gt.Error(t, err)
}
