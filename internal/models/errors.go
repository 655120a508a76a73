package models

import "errors"

// Domain error kinds. Services and the authorization gate return these
// (possibly wrapped); handlers branch on them with errors.Is and translate
// each to a redirect plus a flash message. None of them reach the transport
// layer as a raw fault.
var (
	// ErrNotAuthenticated means the request carries no valid session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied means the resource exists but the requester does
	// not own it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound covers a missing resource and any lookup failure on a
	// malformed identifier; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrStoreFailure wraps persistence-layer errors.
	ErrStoreFailure = errors.New("store failure")

	// ErrValidation covers rejected registration or login input, such as a
	// taken username or a blank password.
	ErrValidation = errors.New("validation failed")
)
