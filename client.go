package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	Filters FilterSnapshot `json:"filters"`
	Sort    []SortRule     `json:"sort"` // nil encodes as null: server default order
	Limit   int            `json:"limit"`
}

// QueryResult is one table's slice of a response. Rows is capped at the
// request limit; Count is the true number of matches.
type QueryResult struct {
	Rows  []Record `json:"data"`
	Count int      `json:"count"`
}

type QueryResponse struct {
	RequestID string
	DF1       QueryResult
	DF2       QueryResult
}

type queryEnvelope struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	DF1     *QueryResult `json:"df1"`
	DF2     *QueryResult `json:"df2"`
}

type RunRecord struct {
	EndTime         string  `json:"end_time"`
	DurationSeconds float64 `json:"duration_seconds"`
	BoxesSelected   int     `json:"boxes_selected"`
}

type Metadata struct {
	History []RunRecord
}

type metadataEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	History []RunRecord `json:"history"`
}

// Latest returns the run with the newest end time.
func (m Metadata) Latest() (RunRecord, time.Time, bool) {
	var (
		best  RunRecord
		when  time.Time
		found bool
	)
	for _, run := range m.History {
		t, ok := parseDate(run.EndTime)
		if !ok {
			continue
		}
		if !found || t.After(when) {
			best, when, found = run, t, true
		}
	}
	return best, when, found
}

// QueryClient is the remote query and metadata service.
type QueryClient interface {
	Query(ctx context.Context, req QueryRequest) (QueryResponse, error)
	Metadata(ctx context.Context) (Metadata, error)
}

type httpClient struct {
	base string
	http *http.Client
	log  *slog.Logger
}

func newHTTPClient(base string, log *slog.Logger) *httpClient {
	return &httpClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
		log:  log,
	}
}

func (c *httpClient) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	id := uuid.NewString()
	body, err := json.Marshal(req)
	if err != nil {
		return QueryResponse{}, fmt.Errorf("encode query: %w", err)
	}

	var env queryEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/query", id, body, &env); err != nil {
		return QueryResponse{}, err
	}
	if !env.Success {
		return QueryResponse{}, &QueryError{Kind: QueryErrMalformed, RequestID: id, Reason: "success=false " + env.Error}
	}
	if env.DF1 == nil || env.DF2 == nil {
		return QueryResponse{}, &QueryError{Kind: QueryErrMalformed, RequestID: id, Reason: "missing df1/df2"}
	}

	c.log.Info("query completed",
		slog.String("request_id", id),
		slog.Int("df1_rows", len(env.DF1.Rows)),
		slog.Int("df1_count", env.DF1.Count),
		slog.Int("df2_rows", len(env.DF2.Rows)),
		slog.Int("df2_count", env.DF2.Count),
	)
	return QueryResponse{RequestID: id, DF1: *env.DF1, DF2: *env.DF2}, nil
}

func (c *httpClient) Metadata(ctx context.Context) (Metadata, error) {
	id := uuid.NewString()
	var env metadataEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/metadata", id, nil, &env); err != nil {
		return Metadata{}, err
	}
	if !env.Success {
		reason := env.Message
		if reason == "" {
			reason = env.Error
		}
		return Metadata{}, &QueryError{Kind: QueryErrMalformed, RequestID: id, Reason: reason}
	}
	return Metadata{History: env.History}, nil
}

func (c *httpClient) do(ctx context.Context, method, path, id string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return &QueryError{Kind: QueryErrNetwork, RequestID: id, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", slog.String("request_id", id), slog.String("path", path), slog.Any("error", err))
		return &QueryError{Kind: QueryErrNetwork, RequestID: id, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("response received",
		slog.String("request_id", id),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &env)
		return &QueryError{Kind: QueryErrNetwork, RequestID: id, Status: resp.StatusCode, Reason: env.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return &QueryError{Kind: QueryErrNetwork, RequestID: id, Err: err}
		}
		return &QueryError{Kind: QueryErrMalformed, RequestID: id, Err: err}
	}
	return nil
}
