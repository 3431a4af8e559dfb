package rpc

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/rs/zerolog/log"
)

const ValidationHeader = "X-Validation-Errors"

// Error maps an engine error onto a connect error. Anything that is not one
// of the domain kinds is reported as a generic internal failure.
func Error(err error) *connect.Error {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		var verr *apperr.ValidationError
		errors.As(err, &verr)
		ce := connect.NewError(connect.CodeInvalidArgument, err)
		if data, mErr := json.Marshal(verr.Fields); mErr == nil {
			ce.Meta().Set(ValidationHeader, string(data))
		}
		return ce
	case apperr.KindConflict:
		return connect.NewError(connect.CodeAlreadyExists, err)
	case apperr.KindGuard:
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case apperr.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	}

	var txErr *apperr.TransactionFailure
	if errors.As(err, &txErr) {
		return connect.NewError(connect.CodeInternal, errors.New(txErr.Error()))
	}
	log.Error().Err(err).Msg("unclassified error reached transport")
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

// InvalidArgument reports a request the transport could not map to an operation
func InvalidArgument(field, msg string) *connect.Error {
	verr := apperr.NewValidationError()
	verr.Add(field, msg)
	return Error(verr)
}
