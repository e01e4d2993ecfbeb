package service

import (
	"encoding/base64"
	"encoding/json"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// permissionSerializer implements PermissionSerializer using JSON wrapped in
// unpadded URL-safe base64.
type permissionSerializer struct{}

// NewPermissionSerializer creates a new permission serializer.
func NewPermissionSerializer() PermissionSerializer {
	return &permissionSerializer{}
}

// Serialize encodes the permission as base64url(JSON). JSON marshaling of a
// flat struct is deterministic, so equal permissions always produce equal
// tokens.
func (p *permissionSerializer) Serialize(permission *domain.Permission) (string, error) {
	if permission == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "permission must not be nil")
	}

	data, err := json.Marshal(permission)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to serialize permission")
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Deserialize decodes a token produced by Serialize. Any decode failure is
// reported as ErrMalformedToken, never as a fatal store error.
func (p *permissionSerializer) Deserialize(token string) (*domain.Permission, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrMalformedToken
	}

	var permission domain.Permission
	if err := json.Unmarshal(data, &permission); err != nil {
		return nil, domain.ErrMalformedToken
	}

	if permission.ID == "" {
		return nil, domain.ErrMalformedToken
	}

	return &permission, nil
}
