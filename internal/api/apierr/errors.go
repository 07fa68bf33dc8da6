package apierr

import (
	"errors"
	"net/http"

	"github.com/partybox-games/roomserver/internal/api/response"
	"github.com/partybox-games/roomserver/internal/model"
)

// Error codes surfaced in the response envelope
const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeMissingRoomCode          = "MISSING_ROOM_CODE"
	CodeMissingName              = "MISSING_NAME"
	CodeRoomNotFound             = "ROOM_NOT_FOUND"
	CodeGameNotFound             = "GAME_NOT_FOUND"
	CodeNotHost                  = "NOT_HOST"
	CodeActionNotAllowed         = "ACTION_NOT_ALLOWED"
	CodeGameInProgress           = "GAME_IN_PROGRESS"
	CodeNoGameInProgress         = "NO_GAME_IN_PROGRESS"
	CodeInsufficientPlayers      = "INSUFFICIENT_PLAYERS"
	CodeTooManyPlayers           = "TOO_MANY_PLAYERS"
	CodeConcurrentUpdateConflict = "CONCURRENT_UPDATE_CONFLICT"
	CodeInternalError            = "INTERNAL_ERROR"
)

// httpError combines an HTTP status with an envelope error code
type httpError struct {
	status  int
	code    string
	message string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response envelope to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.Error(w, he.status, he.code, he.message)
}

// toHTTPError maps a domain error onto an HTTP status and error code
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrMissingRoomCode):
		return &httpError{http.StatusBadRequest, CodeMissingRoomCode, "Room code is required"}
	case errors.Is(err, model.ErrMissingName):
		return &httpError{http.StatusBadRequest, CodeMissingName, "Player name is required"}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, CodeRoomNotFound, "Room not found"}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, CodeGameNotFound, "Game not found"}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, CodeNotHost, "Only the host can perform this action"}
	case errors.Is(err, model.ErrActionNotAllowed):
		return &httpError{http.StatusForbidden, CodeActionNotAllowed, "Action not allowed in the current state"}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, CodeGameInProgress, "Game is in progress"}
	case errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{http.StatusConflict, CodeNoGameInProgress, "No game in progress"}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, CodeInsufficientPlayers, "Not enough players to start"}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusConflict, CodeTooManyPlayers, "Too many players for this game"}
	case errors.Is(err, model.ErrConcurrentUpdate):
		return &httpError{http.StatusConflict, CodeConcurrentUpdateConflict, "Concurrent update conflict, please retry"}
	default:
		// Includes context deadline/cancellation from a timed-out
		// dispatch: same surface as any other unexpected failure.
		return &httpError{http.StatusInternalServerError, CodeInternalError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, CodeInvalidRequest, message}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, CodeInternalError, "Internal server error"}
}
