package constants

import "net/http"

// Response messages. Clients match on these strings, so they are part of the API.
const (
	MsgGreeting           = "Hello world!"
	MsgUnauthorized       = "unauthorized access"
	MsgForbidden          = "forbidden access"
	MsgValidUser          = "valid user"
	MsgUserCreated        = "user created"
	MsgPurchaseSuccessful = "purchase successful"
	MsgOrderDeleted       = "order deleted"
	MsgPaymentSaved       = "payment info saved"

	MsgInvalidID   = "invalid id"
	MsgInvalidBody = "invalid request body"
)

// statusMessages is the fallback text the error handler uses per HTTP status
var statusMessages = map[int]string{
	http.StatusBadRequest:           "bad request",
	http.StatusUnauthorized:         MsgUnauthorized,
	http.StatusForbidden:            MsgForbidden,
	http.StatusNotFound:             "not found",
	http.StatusMethodNotAllowed:     "method not allowed",
	http.StatusUnsupportedMediaType: "unsupported media type",
	http.StatusInternalServerError:  "internal server error",
	http.StatusBadGateway:           "payment gateway error",
	http.StatusServiceUnavailable:   "service unavailable",
}

// GetErrorMessage returns the standard message for an HTTP status
func GetErrorMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unknown error"
}
