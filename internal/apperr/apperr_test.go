package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, KindInvalidArgument, KindOf(InvalidArgument("bad")))
	require.Equal(t, KindConflict, KindOf(Conflict("dup")))
	require.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	require.Equal(t, KindInternal, KindOf(Internal("boom", errors.New("pq: down"))))
	require.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("respond: %w", Conflict("dup"))
	require.Equal(t, KindConflict, KindOf(err))
	require.True(t, IsKind(err, KindConflict))
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidArgument("bad")))
	require.Equal(t, http.StatusConflict, HTTPStatus(Conflict("dup")))
	require.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal("boom", nil)))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	err := Internal("query users", errors.New("pq: connection refused"))
	require.Equal(t, "internal error", Message(err))
	// The full chain stays available for logs.
	require.Contains(t, err.Error(), "pq: connection refused")
}

func TestMessageSurfacesCallerErrors(t *testing.T) {
	require.Equal(t, "cannot connect with yourself", Message(InvalidArgument("cannot connect with yourself")))
	require.Equal(t, "internal error", Message(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Internal("store message", cause)
	require.ErrorIs(t, err, cause)
}
