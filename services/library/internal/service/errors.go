package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "library"

var (
	// ErrUnresolvedReference matches any UnresolvedReferenceError via errors.Is.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrValidation matches any ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// UnresolvedReferenceError rejects a movie or TV show write that cites a
// classification name with no stored row.
type UnresolvedReferenceError struct {
	Field string
	Name  string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Field, e.Name)
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

func (e *UnresolvedReferenceError) GRPCStatus() *status.Status {
	return invalidArgument(e.Error(), "UNRESOLVED_REFERENCE",
		map[string]string{"field": e.Field, "name": e.Name},
		[]*errdetails.BadRequest_FieldViolation{{Field: e.Field, Description: e.Error()}},
	)
}

// ValidationError lists every rejected field of a draft, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := e.fieldNames()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) fieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ValidationError) GRPCStatus() *status.Status {
	var fv []*errdetails.BadRequest_FieldViolation
	for _, k := range e.fieldNames() {
		fv = append(fv, &errdetails.BadRequest_FieldViolation{Field: k, Description: e.Fields[k]})
	}
	return invalidArgument("invalid request", "VALIDATION_FAILED", nil, fv)
}

func invalidArgument(msg, reason string, metadata map[string]string, fv []*errdetails.BadRequest_FieldViolation) *status.Status {
	st := status.New(codes.InvalidArgument, msg)
	info := &errdetails.ErrorInfo{Reason: reason, Domain: errorDomain, Metadata: metadata}
	bad := &errdetails.BadRequest{FieldViolations: fv}
	st2, err := st.WithDetails(info, bad)
	if err != nil {
		return st
	}
	return st2
}
