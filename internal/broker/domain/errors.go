package domain

import (
	"github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// Broker domain errors.
var (
	// ErrUserNotFound indicates the user record does not exist yet.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrPermissionNotFound indicates no permission exists under the
	// deterministic id.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrCachedTokenNotFound indicates no cache document exists under the
	// deterministic id.
	ErrCachedTokenNotFound = errors.Wrap(errors.ErrNotFound, "cached token not found")

	// ErrMalformedToken indicates a serialized permission could not be
	// decoded. The cache treats it as a miss.
	ErrMalformedToken = errors.Wrap(errors.ErrDecode, "malformed serialized permission")
)
