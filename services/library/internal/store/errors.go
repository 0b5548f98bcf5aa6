package store

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "library"

// ErrDuplicateName matches any DuplicateNameError via errors.Is.
var ErrDuplicateName = errors.New("duplicate name")

// ErrInvariantViolation is returned when a write would persist a media row
// without all of its required references. It signals a programming error.
var ErrInvariantViolation = errors.New("invariant violation")

// DuplicateNameError is returned when a classification insert or update
// collides with the unique name constraint.
type DuplicateNameError struct {
	Kind Kind
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s named %q already exists", e.Kind, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// GRPCStatus lets status.FromError classify the error as AlreadyExists.
func (e *DuplicateNameError) GRPCStatus() *status.Status {
	st := status.New(codes.AlreadyExists, e.Error())
	info := &errdetails.ErrorInfo{
		Reason:   "DUPLICATE_NAME",
		Domain:   errorDomain,
		Metadata: map[string]string{"kind": string(e.Kind), "name": e.Name},
	}
	st2, err := st.WithDetails(info)
	if err != nil {
		return st
	}
	return st2
}

func missingRefs(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d is missing a required reference", ErrInvariantViolation, entity, id)
}
