package domain

// CachedToken is a cache document wrapping a serialized Permission. It is
// upserted on every fresh provisioning and read on every lookup; stale
// entries are superseded in place, never deleted. Field names are the wire
// contract of the cache collection.
type CachedToken struct {
	// ID is the deterministic cache id, see CachedTokenID.
	ID string `docstore:"id" json:"id"`

	// Expires is the absolute expiry in whole seconds since ReferenceEpoch,
	// computed from the wall clock at write time.
	Expires int64 `docstore:"expires" json:"expires"`

	// UserID is the identity the token was issued to. Cache ids always embed
	// it, so one principal's token is never returned for another.
	UserID string `docstore:"userid" json:"userid"`

	// SerializedPermission is the opaque transport-safe token.
	SerializedPermission string `docstore:"serializedPermission" json:"serializedPermission"`

	// ResourceID is the resource name the permission is scoped to.
	ResourceID string `docstore:"resourceId" json:"resourceId"`
}
