package main

import (
	"context"
	"log/slog"
	"maps"
	"reflect"
	"strings"
)

// FilterSnapshot is the last submitted filter criteria.
type FilterSnapshot map[string]any

// Empty reports whether no criterion carries a value.
func (f FilterSnapshot) Empty() bool {
	for _, v := range f {
		if !blankValue(v) {
			return false
		}
	}
	return true
}

func blankValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
		return rv.Len() == 0
	}
	return false
}

type queryKind int

const (
	queryFilter queryKind = iota
	querySort
	queryResetSort
)

func (k queryKind) String() string {
	switch k {
	case queryFilter:
		return "filter"
	case querySort:
		return "sort"
	case queryResetSort:
		return "reset-sort"
	}
	return "unknown"
}

// QueryCall is one issued request. Seq grows by one per call.
type QueryCall struct {
	Seq     uint64
	Kind    queryKind
	Request QueryRequest
}

type queryDoneMsg struct {
	Call     QueryCall
	Response QueryResponse
	Err      error
}

type reconcileOutcome int

const (
	outcomeApplied reconcileOutcome = iota
	outcomeStale
	outcomeCleared
	outcomeIgnored
)

// resultSink receives reconciled results. Grid implements it.
type resultSink interface {
	SetResult(id TableID, res QueryResult)
	HeldRows() int
	SetTruncated(bool)
}

// Orchestrator turns filter and sort intent into query calls and folds the
// answers back into the sink.
type Orchestrator struct {
	rules   *SortRules
	sink    resultSink
	limit   int
	log     *slog.Logger
	filters FilterSnapshot
	seq     uint64
	pending int
}

func NewOrchestrator(rules *SortRules, sink resultSink, limit int, log *slog.Logger) *Orchestrator {
	if limit <= 0 {
		limit = defaultResultLimit
	}
	return &Orchestrator{
		rules:   rules,
		sink:    sink,
		limit:   limit,
		log:     log,
		filters: FilterSnapshot{},
	}
}

func (o *Orchestrator) Rules() *SortRules {
	return o.rules
}

func (o *Orchestrator) Filters() FilterSnapshot {
	return maps.Clone(o.filters)
}

func (o *Orchestrator) Pending() bool {
	return o.pending > 0
}

// ApplyFilters stores the criteria and always issues a query with the
// current sort rules.
func (o *Orchestrator) ApplyFilters(criteria FilterSnapshot) QueryCall {
	o.filters = maps.Clone(criteria)
	if o.filters == nil {
		o.filters = FilterSnapshot{}
	}
	return o.issue(queryFilter, o.rules.Rules())
}

// ApplySort issues a query with the current rules. With no rules, or with
// no filter and nothing on screen, there is nothing to send.
func (o *Orchestrator) ApplySort() (QueryCall, bool) {
	if o.rules.Len() == 0 {
		return QueryCall{}, false
	}
	if o.filters.Empty() && o.sink.HeldRows() == 0 {
		o.log.Debug("sort skipped", slog.String("reason", "no filter and no rows"))
		return QueryCall{}, false
	}
	return o.issue(querySort, o.rules.Rules()), true
}

// ResetSort clears every rule and asks for the server default order when
// there is a filtered result to reorder.
func (o *Orchestrator) ResetSort() (QueryCall, bool) {
	o.rules.Clear()
	if o.filters.Empty() || o.sink.HeldRows() == 0 {
		o.log.Debug("sort reset without query")
		return QueryCall{}, false
	}
	return o.issue(queryResetSort, nil), true
}

// RemoveSortRule drops rule i; removing the last one falls back to ResetSort.
func (o *Orchestrator) RemoveSortRule(i int) (QueryCall, bool) {
	removed, emptied := o.rules.Remove(i)
	if !removed || !emptied {
		return QueryCall{}, false
	}
	return o.ResetSort()
}

// ResetFilters forgets the criteria and clears both tables. Requests still
// in flight become stale.
func (o *Orchestrator) ResetFilters() {
	o.filters = FilterSnapshot{}
	o.seq++
	o.sink.SetResult(TableStandard, QueryResult{})
	o.sink.SetResult(TableExtended, QueryResult{})
	o.sink.SetTruncated(false)
	o.log.Info("filters reset")
}

func (o *Orchestrator) issue(kind queryKind, sort []SortRule) QueryCall {
	o.seq++
	o.pending++
	if len(sort) == 0 {
		sort = nil
	}
	call := QueryCall{
		Seq:  o.seq,
		Kind: kind,
		Request: QueryRequest{
			Filters: maps.Clone(o.filters),
			Sort:    sort,
			Limit:   o.limit,
		},
	}
	o.log.Info("query issued",
		slog.String("kind", kind.String()),
		slog.Uint64("seq", call.Seq),
		slog.Int("sort_rules", len(sort)),
	)
	return call
}

func runQuery(ctx context.Context, client QueryClient, call QueryCall) queryDoneMsg {
	resp, err := client.Query(ctx, call.Request)
	return queryDoneMsg{Call: call, Response: resp, Err: err}
}

// Reconcile applies a finished call. Only the newest call may change what
// is shown.
func (o *Orchestrator) Reconcile(msg queryDoneMsg) reconcileOutcome {
	if o.pending > 0 {
		o.pending--
	}
	if msg.Call.Seq < o.seq {
		o.log.Debug("stale response dropped",
			slog.Uint64("seq", msg.Call.Seq),
			slog.Uint64("latest", o.seq),
		)
		return outcomeStale
	}

	if msg.Err != nil {
		if isMalformed(msg.Err) {
			o.log.Warn("malformed query result", slog.String("kind", msg.Call.Kind.String()), slog.Any("error", msg.Err))
			return outcomeIgnored
		}
		o.log.Error("query failed", slog.String("kind", msg.Call.Kind.String()), slog.Any("error", msg.Err))
		if msg.Call.Kind != queryFilter {
			return outcomeIgnored
		}
		o.sink.SetResult(TableStandard, QueryResult{})
		o.sink.SetResult(TableExtended, QueryResult{})
		o.sink.SetTruncated(false)
		return outcomeCleared
	}

	df1, df2 := msg.Response.DF1, msg.Response.DF2
	o.sink.SetResult(TableStandard, df1)
	o.sink.SetResult(TableExtended, df2)
	if msg.Call.Kind == queryFilter {
		o.sink.SetTruncated(df1.Count+df2.Count > len(df1.Rows)+len(df2.Rows))
	}
	return outcomeApplied
}
