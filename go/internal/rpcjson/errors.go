package rpcjson

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/models"
)

// CodeOf picks the connect code for a domain error
func CodeOf(err error) connect.Code {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return connect.CodeInvalidArgument
	case errors.Is(err, models.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, models.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, models.ErrPermissionDenied):
		return connect.CodePermissionDenied
	case errors.Is(err, models.ErrUnauthenticated):
		return connect.CodeUnauthenticated
	case errors.Is(err, models.ErrStoreUnavailable):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// Error wraps err in a connect error with the matching code
func Error(err error) error {
	if err == nil {
		return nil
	}
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return connect.NewError(CodeOf(err), err)
}

// InvalidArgument wraps a request decoding error
func InvalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
