package graph

import "errors"

var (
	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrSelfBlock  = errors.New("cannot block yourself")
	ErrSelfDeny   = errors.New("cannot hide your activity from yourself")

	ErrUserNotFound = errors.New("target user not found")

	// ErrStoreUnavailable wraps driver/connectivity failures. It propagates
	// unchanged up to the caller; an outage is never reported as an empty result.
	ErrStoreUnavailable = errors.New("edge store unavailable")
)
