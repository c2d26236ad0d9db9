package transport

import (
	"context"
	"errors"

	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/records/validate"
	"github.com/jrife/recordkeeper/storage/collection"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Code maps an error returned by an application to a status code
func Code(err error) codes.Code {
	var decodeError *DecodeError

	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, validate.ErrMissingField),
		errors.Is(err, validate.ErrInvalidField),
		errors.Is(err, collection.ErrTooLarge),
		errors.As(err, &decodeError):
		return codes.InvalidArgument
	case errors.Is(err, validate.ErrNotExist):
		return codes.FailedPrecondition
	case errors.Is(err, records.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, ErrNoSuchMethod):
		return codes.Unimplemented
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}

	if s, ok := status.FromError(err); ok {
		return s.Code()
	}

	return codes.Internal
}

// Status converts an error returned by an application into a
// status error carrying its code and text. Errors that are
// already status errors are returned as is, except undecodable
// requests, which are always InvalidArgument.
func Status(err error) error {
	if err == nil {
		return nil
	}

	var decodeError *DecodeError

	if errors.As(err, &decodeError) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(Code(err), err.Error())
}
