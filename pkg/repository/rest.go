package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
)

// DefaultHTTPTimeout bounds each request to the REST remote
const DefaultHTTPTimeout = 10 * time.Second

// REST stores history in a PostgREST style table (as exposed by Supabase).
// Rows are {id, item_name, data, created_at} where data holds the whole
// HistoryItem.
type REST struct {
	baseURL    string
	apiKey     string
	table      string
	limit      int
	httpClient *http.Client
}

// RESTOption configures REST
type RESTOption func(*REST)

// WithHTTPClient replaces the default client
func WithHTTPClient(client *http.Client) RESTOption {
	return func(r *REST) {
		r.httpClient = client
	}
}

// WithTable overrides CollectionName as the remote table
func WithTable(table string) RESTOption {
	return func(r *REST) {
		r.table = table
	}
}

// NewREST creates a REST remote. baseURL is the project URL without the
// /rest/v1 suffix.
func NewREST(baseURL, apiKey string, opts ...RESTOption) (*REST, error) {
	if baseURL == "" {
		return nil, goerr.New("remote url is required")
	}
	if apiKey == "" {
		return nil, goerr.New("remote key is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid remote url", goerr.V("url", baseURL))
	}

	r := &REST{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      CollectionName,
		limit:      RemoteListLimit,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type restRow struct {
	ID       model.HistoryID   `json:"id"`
	ItemName string            `json:"item_name"`
	Data     model.HistoryItem `json:"data"`
}

type restDataRow struct {
	Data model.HistoryItem `json:"data"`
}

func (r *REST) endpoint(query url.Values) string {
	u := r.baseURL + "/rest/v1/" + r.table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (r *REST) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build remote request", goerr.V("method", method))
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (r *REST) do(req *http.Request) ([]byte, error) {
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "remote request failed", goerr.V("method", req.Method))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read remote response", goerr.V("status", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(ErrRemoteStatus, "remote store rejected request",
			goerr.V("method", req.Method),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}
	return body, nil
}

func (r *REST) PutHistory(ctx context.Context, item *model.HistoryItem) error {
	if item == nil {
		return goerr.New("history item is nil")
	}

	payload, err := json.Marshal(restRow{
		ID:       item.ID,
		ItemName: item.Input.ItemName,
		Data:     *item,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to encode remote row", goerr.V("id", item.ID))
	}

	req, err := r.newRequest(ctx, http.MethodPost, r.endpoint(nil), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	if _, err := r.do(req); err != nil {
		return goerr.Wrap(err, "failed to insert remote history", goerr.V("id", item.ID))
	}
	return nil
}

func (r *REST) query(ctx context.Context, query url.Values) ([]*model.HistoryItem, error) {
	req, err := r.newRequest(ctx, http.MethodGet, r.endpoint(query), nil)
	if err != nil {
		return nil, err
	}

	body, err := r.do(req)
	if err != nil {
		return nil, err
	}

	var rows []restDataRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, goerr.Wrap(err, "failed to decode remote rows")
	}

	items := make([]*model.HistoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, &rows[i].Data)
	}
	return items, nil
}

func (r *REST) ListHistory(ctx context.Context) ([]*model.HistoryItem, error) {
	items, err := r.query(ctx, url.Values{
		"select": {"data"},
		"order":  {"created_at.desc"},
		"limit":  {strconv.Itoa(r.limit)},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list remote history")
	}
	return items, nil
}

func (r *REST) GetHistory(ctx context.Context, id model.HistoryID) (*model.HistoryItem, error) {
	items, err := r.query(ctx, url.Values{
		"select": {"data"},
		"id":     {"eq." + string(id)},
		"limit":  {"1"},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get remote history", goerr.V("id", id))
	}
	if len(items) == 0 {
		return nil, goerr.Wrap(ErrHistoryNotFound, "not in remote history", goerr.V("id", id))
	}
	return items[0], nil
}
