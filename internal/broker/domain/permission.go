package domain

// Permission is the issued artifact: a read-only capability scoped to exactly
// one resource collection, owned by a single user. Its authority is entirely
// delegated to the underlying store; the broker only creates, reads, and
// serializes it. Created at most once per (user, resource) pair thanks to the
// deterministic id, never mutated, never deleted by the broker.
type Permission struct {
	// ID is the deterministic permission id, see PermissionID.
	ID string `docstore:"id" json:"id"`

	// UserID is the owning identity.
	UserID string `docstore:"userid" json:"userid"`

	// Mode is always PermissionModeRead for broker-issued permissions.
	Mode PermissionMode `docstore:"mode" json:"mode"`

	// ResourceLink is the opaque locator of the granted collection.
	ResourceLink string `docstore:"resourceLink" json:"resourceLink"`
}

// User is a principal record in the store. The broker never creates users
// eagerly; it materializes them the first time a permission is provisioned.
type User struct {
	ID string `docstore:"id" json:"id"`
}
