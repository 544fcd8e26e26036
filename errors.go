package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNothingSelected = errors.New("no cells selected")
	ErrNoRows          = errors.New("no rows to export")
)

type QueryErrorKind string

const (
	// network covers transport failures, timeouts and non-2xx statuses.
	QueryErrNetwork QueryErrorKind = "network"
	// malformed covers success=false and bodies that do not match the
	// response shape.
	QueryErrMalformed QueryErrorKind = "malformed"
)

// QueryError describes a failed call to the query or metadata service.
type QueryError struct {
	Kind      QueryErrorKind
	RequestID string
	Status    int    // HTTP status, 0 when no response arrived
	Reason    string // server message when it sent one
	Err       error
}

func (e *QueryError) Error() string {
	parts := []string{fmt.Sprintf("query %s failure", e.Kind)}
	if e.Status != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.Status))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if e.RequestID != "" {
		parts = append(parts, "request "+e.RequestID)
	}
	return strings.Join(parts, " - ")
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func isMalformed(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == QueryErrMalformed
}
