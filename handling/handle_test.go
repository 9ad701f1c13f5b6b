package handling

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"vendora_server/lib"

	"github.com/MonkyMars/gecho"
)

func TestRespondDomainErrorStatusCodes(t *testing.T) {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))

	cases := []struct {
		err  error
		want int
	}{
		{lib.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("order lookup: %w", lib.ErrNotFound), http.StatusNotFound},
		{lib.ErrInvalidInput, http.StatusBadRequest},
		{lib.ErrInvalidStatus, http.StatusBadRequest},
		{lib.ErrInvalidTransition, http.StatusConflict},
		{lib.ErrConflict, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondDomainError(rec, tc.err, "test", logger)
		if rec.Code != tc.want {
			t.Errorf("RespondDomainError(%v) wrote %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}
