package errorx

import "net/http"

type Code int

var Unknown = Error{Code: Internal, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	TooManyRequests  Code = 100009

	// Upload codes
	TooManyFiles  Code = 200001
	FileTooLarge  Code = 200002
	UploadFailure Code = 200003
)

// HTTPStatus maps an error code to the status carried by the response
// envelope. Validation errors are client errors, everything unclassified is an
// internal error.
func (c Code) HTTPStatus() int {
	switch c {
	case BadRequest, AlreadyExists, TooManyFiles, FileTooLarge:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case PermissionDenied:
		return http.StatusForbidden
	case Unauthenticated:
		return http.StatusUnauthorized
	case TooManyRequests:
		return http.StatusTooManyRequests
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
