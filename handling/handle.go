package handling

import (
	"errors"
	"net/http"
	"vendora_server/lib"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w).Send()
}

// RespondDomainError maps domain errors onto response envelopes. Anything
// outside the taxonomy is an internal error; storage details never leak.
func RespondDomainError(w http.ResponseWriter, err error, msg string, logger *gecho.Logger) error {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w,
			gecho.WithMessage(msg),
		).Send()
	case errors.Is(err, lib.ErrInvalidInput), errors.Is(err, lib.ErrInvalidStatus):
		return gecho.BadRequest(w,
			gecho.WithMessage(msg),
			gecho.WithData(map[string]string{"error": err.Error()}),
		).Send()
	case errors.Is(err, lib.ErrInvalidTransition), errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w,
			gecho.WithMessage(msg),
			gecho.WithData(map[string]string{"error": err.Error()}),
		).Send()
	default:
		return HandleError(err, msg, logger, w)
	}
}
