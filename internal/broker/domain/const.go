// Package domain defines the entities and contract constants of the
// permission broker: read-only store permissions, cached serialized tokens,
// and the deterministic identifiers that tie the two together.
package domain

import "time"

// PermissionMode describes the access level a permission grants.
// The broker only ever issues read permissions.
type PermissionMode string

// PermissionModeRead is the single mode issued by the broker.
const PermissionModeRead PermissionMode = "read"

const (
	// PublicUserID is the well-known identity used for unauthenticated
	// public read access.
	PublicUserID = "generalPublic"

	// PublicResourceAlias is the distinguished resource name that stands in
	// for the public resource collection.
	PublicResourceAlias = "publoc"

	// PublicResourceName is the collection the public alias resolves to.
	PublicResourceName = "locations"

	// CachedTokenIDSuffix is appended to "<user>-<resource>" to form the
	// cache document id.
	CachedTokenIDSuffix = "-permission"

	// TokenCacheTTLSeconds is the default lifetime of a cache entry.
	TokenCacheTTLSeconds = 3600

	// FreshnessMarginSeconds is added to "now" when checking cache expiry,
	// so a token on the verge of expiring is never handed out.
	FreshnessMarginSeconds = 300
)

// ReferenceEpoch is the zero point for the integer-seconds expiry field on
// cached tokens. It must never change once any cached token exists: every
// reader and writer of the expires field does arithmetic against it.
var ReferenceEpoch = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// EpochSeconds converts a wall clock instant to whole seconds since
// ReferenceEpoch.
func EpochSeconds(t time.Time) int64 {
	return int64(t.UTC().Sub(ReferenceEpoch) / time.Second)
}

// PermissionID derives the deterministic permission id for a (user, resource)
// pair. Repeated provisioning attempts converge on the same store record.
func PermissionID(userID, resource string) string {
	return userID + "-" + resource
}

// CachedTokenID derives the deterministic cache document id for a
// (user, resource) pair.
func CachedTokenID(userID, resource string) string {
	return userID + "-" + resource + CachedTokenIDSuffix
}

// TargetResource resolves the public alias to its backing collection.
// All other resource names map to themselves.
func TargetResource(resource string) string {
	if resource == PublicResourceAlias {
		return PublicResourceName
	}
	return resource
}

// CollectionLink returns the opaque locator for a resource collection. The
// broker never interprets it; the store's own verification path does.
func CollectionLink(resource string) string {
	return "colls/" + TargetResource(resource)
}
