// Package service provides stateless broker services.
package service

import (
	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
)

// PermissionSerializer converts a permission to and from an opaque,
// transport-safe string token. The encoding is deterministic and
// round-trippable; the broker never inspects the encoded bytes.
type PermissionSerializer interface {
	// Serialize encodes a permission into an opaque token string.
	Serialize(permission *domain.Permission) (string, error)

	// Deserialize is the exact inverse of Serialize. Malformed input returns
	// ErrMalformedToken so callers can treat the value as absent.
	Deserialize(token string) (*domain.Permission, error)
}
