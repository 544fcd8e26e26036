package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

type fakeClient struct {
	requests []QueryRequest
	resp     QueryResponse
	err      error
}

func (f *fakeClient) Query(_ context.Context, req QueryRequest) (QueryResponse, error) {
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func (f *fakeClient) Metadata(context.Context) (Metadata, error) {
	return Metadata{}, nil
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *Grid) {
	t.Helper()
	g, _ := newTestGrid(t, nil)
	return NewOrchestrator(NewSortRules(sortableColumns), g, 200, testLogger()), g
}

func okResponse(df1, df2 []Record, c1, c2 int) QueryResponse {
	return QueryResponse{
		DF1: QueryResult{Rows: df1, Count: c1},
		DF2: QueryResult{Rows: df2, Count: c2},
	}
}

func done(call QueryCall, resp QueryResponse, err error) queryDoneMsg {
	return queryDoneMsg{Call: call, Response: resp, Err: err}
}

var someFilter = FilterSnapshot{"investor": "Bệnh viện", "place": []string{}}

func TestApplyFiltersAlwaysIssuesQuery(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	call := o.ApplyFilters(FilterSnapshot{"investor": ""})

	assert.Equal(t, call.Kind, queryFilter)
	assert.Equal(t, call.Request.Limit, 200)
	assert.Assert(t, call.Request.Sort == nil)
	assert.Assert(t, o.Pending())
}

func TestQueryRequestEncodesEmptySortAsNull(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	raw, err := json.Marshal(o.ApplyFilters(someFilter).Request)
	assert.NilError(t, err)

	var decoded map[string]any
	assert.NilError(t, json.Unmarshal(raw, &decoded))
	v, ok := decoded["sort"]
	assert.Assert(t, ok)
	assert.Assert(t, v == nil)
	assert.Equal(t, decoded["limit"], float64(200))
}

func TestApplyFiltersCarriesCurrentSortRules(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	i := o.Rules().Add()
	o.Rules().SetColumn(i, "unitPrice")
	o.Rules().SetOrder(i, SortDesc)

	call := o.ApplyFilters(someFilter)

	assert.DeepEqual(t, call.Request.Sort, []SortRule{{Column: "unitPrice", Order: SortDesc}})
}

func TestApplySortGuards(t *testing.T) {
	o, g := newTestOrchestrator(t)

	_, ok := o.ApplySort()
	assert.Assert(t, !ok, "no rules")

	o.Rules().Add()
	_, ok = o.ApplySort()
	assert.Assert(t, !ok, "no filter and no rows")

	call := o.ApplyFilters(someFilter)
	o.Reconcile(done(call, okResponse(abcRows(1), nil, 1, 0), nil))
	assert.Equal(t, g.HeldRows(), 1)

	call, ok = o.ApplySort()
	assert.Assert(t, ok)
	assert.Equal(t, call.Kind, querySort)
	assert.DeepEqual(t, call.Request.Sort, []SortRule{{Column: "ma_tbmt", Order: SortAsc}})
	assert.Equal(t, call.Request.Filters["investor"], "Bệnh viện")
}

func TestResetSortClearsRules(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Rules().Add()

	_, ok := o.ResetSort()

	assert.Assert(t, !ok)
	assert.Equal(t, o.Rules().Len(), 0)
}

func TestRemovingLastRuleResetsToDefaultOrder(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Rules().Add()
	call := o.ApplyFilters(someFilter)
	o.Reconcile(done(call, okResponse(abcRows(2), nil, 2, 0), nil))

	call, ok := o.RemoveSortRule(0)

	assert.Assert(t, ok)
	assert.Equal(t, call.Kind, queryResetSort)
	assert.Assert(t, call.Request.Sort == nil)
	assert.Equal(t, o.Rules().Len(), 0)
}

func TestRemovingOneOfSeveralRulesDoesNotQuery(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	o.Rules().Add()
	o.Rules().Add()

	_, ok := o.RemoveSortRule(1)

	assert.Assert(t, !ok)
	assert.Equal(t, o.Rules().Len(), 1)
}

func TestReconcileAppliesResultAndTruncation(t *testing.T) {
	o, g := newTestOrchestrator(t)
	call := o.ApplyFilters(someFilter)

	outcome := o.Reconcile(done(call, okResponse(abcRows(2), []Record{{"X": "x"}}, 250, 1), nil))

	assert.Equal(t, outcome, outcomeApplied)
	assert.Equal(t, len(g.Rows(TableStandard)), 2)
	assert.Equal(t, len(g.Rows(TableExtended)), 1)
	assert.Equal(t, g.Total(TableStandard), 250)
	assert.Assert(t, g.Truncated())
	assert.Assert(t, !o.Pending())

	call = o.ApplyFilters(someFilter)
	o.Reconcile(done(call, okResponse(abcRows(1), nil, 1, 0), nil))
	assert.Assert(t, !g.Truncated())
}

func TestReconcileDropsStaleResponses(t *testing.T) {
	o, g := newTestOrchestrator(t)
	first := o.ApplyFilters(someFilter)
	second := o.ApplyFilters(FilterSnapshot{"drugName": "Paracetamol"})

	assert.Equal(t, o.Reconcile(done(second, okResponse(abcRows(1), nil, 1, 0), nil)), outcomeApplied)
	assert.Equal(t, o.Reconcile(done(first, okResponse(abcRows(3), nil, 3, 0), nil)), outcomeStale)

	assert.Equal(t, len(g.Rows(TableStandard)), 1)
	assert.Assert(t, !o.Pending())
}

func TestReconcileNetworkFailure(t *testing.T) {
	netErr := &QueryError{Kind: QueryErrNetwork, Status: 502}

	t.Run("filter clears both tables", func(t *testing.T) {
		o, g := newTestOrchestrator(t)
		call := o.ApplyFilters(someFilter)
		o.Reconcile(done(call, okResponse(abcRows(2), nil, 900, 0), nil))
		assert.Assert(t, g.Truncated())

		call = o.ApplyFilters(someFilter)
		assert.Equal(t, o.Reconcile(done(call, QueryResponse{}, netErr)), outcomeCleared)

		assert.Equal(t, g.HeldRows(), 0)
		assert.Assert(t, !g.Truncated())
	})

	t.Run("sort keeps prior rows", func(t *testing.T) {
		o, g := newTestOrchestrator(t)
		o.Rules().Add()
		call := o.ApplyFilters(someFilter)
		o.Reconcile(done(call, okResponse(abcRows(2), nil, 2, 0), nil))

		call, _ = o.ApplySort()
		assert.Equal(t, o.Reconcile(done(call, QueryResponse{}, netErr)), outcomeIgnored)

		assert.Equal(t, g.HeldRows(), 2)
	})
}

func TestReconcileMalformedIsNoOp(t *testing.T) {
	o, g := newTestOrchestrator(t)
	call := o.ApplyFilters(someFilter)
	o.Reconcile(done(call, okResponse(abcRows(2), nil, 2, 0), nil))

	call = o.ApplyFilters(someFilter)
	bad := &QueryError{Kind: QueryErrMalformed, Reason: "missing df1/df2"}

	assert.Equal(t, o.Reconcile(done(call, QueryResponse{}, bad)), outcomeIgnored)
	assert.Equal(t, g.HeldRows(), 2)
}

func TestResetFiltersClearsTablesAndStalesInFlight(t *testing.T) {
	o, g := newTestOrchestrator(t)
	call := o.ApplyFilters(someFilter)

	o.ResetFilters()

	assert.Assert(t, o.Filters().Empty())
	assert.Equal(t, o.Reconcile(done(call, okResponse(abcRows(2), nil, 2, 0), nil)), outcomeStale)
	assert.Equal(t, g.HeldRows(), 0)
}

func TestRunQueryForwardsRequest(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	client := &fakeClient{err: errors.New("down")}
	call := o.ApplyFilters(someFilter)

	msg := runQuery(context.Background(), client, call)

	assert.Equal(t, msg.Call.Seq, call.Seq)
	assert.ErrorContains(t, msg.Err, "down")
	assert.Equal(t, len(client.requests), 1)
	assert.Equal(t, client.requests[0].Limit, 200)
}

func TestFilterSnapshotEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   FilterSnapshot
		want bool
	}{
		{"nil", nil, true},
		{"blank values", FilterSnapshot{"investor": "  ", "place": []string{}, "dateFrom": ""}, true},
		{"text", FilterSnapshot{"investor": "x"}, false},
		{"list", FilterSnapshot{"place": []string{"Tỉnh An Giang"}}, false},
		{"any list", FilterSnapshot{"place": []any{"a"}}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.in.Empty(), tt.want, tt.name)
	}
}
