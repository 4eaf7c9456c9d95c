package errors

import "net/http"

// Fixed messages for the error envelope. Clients match on these, so they never
// carry request-specific detail.
const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "resource not found"
	MsgUnprocessable = "unprocessable"
	MsgInternalError = "internal server error"
)

// MessageFor returns the fixed message for a status code. Statuses outside the
// envelope's taxonomy fall back to the internal error message.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	default:
		return MsgInternalError
	}
}
