package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEpochSeconds(t *testing.T) {
	t.Run("ReferenceEpochIsZero", func(t *testing.T) {
		assert.Equal(t, int64(0), EpochSeconds(ReferenceEpoch))
	})

	t.Run("OneHourAfterEpoch", func(t *testing.T) {
		assert.Equal(t, int64(3600), EpochSeconds(ReferenceEpoch.Add(time.Hour)))
	})

	t.Run("SubSecondTruncates", func(t *testing.T) {
		assert.Equal(t, int64(1), EpochSeconds(ReferenceEpoch.Add(1900*time.Millisecond)))
	})

	t.Run("NonUTCInputNormalized", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		utc := ReferenceEpoch.Add(24 * time.Hour)
		assert.Equal(t, EpochSeconds(utc), EpochSeconds(utc.In(loc)))
	})
}

func TestDeterministicIDs(t *testing.T) {
	t.Run("PermissionID", func(t *testing.T) {
		assert.Equal(t, "alice-orders", PermissionID("alice", "orders"))
	})

	t.Run("CachedTokenID", func(t *testing.T) {
		assert.Equal(t, "alice-orders-permission", CachedTokenID("alice", "orders"))
	})

	t.Run("PublicPair", func(t *testing.T) {
		assert.Equal(t, "generalPublic-publoc", PermissionID(PublicUserID, PublicResourceAlias))
		assert.Equal(t, "generalPublic-publoc-permission", CachedTokenID(PublicUserID, PublicResourceAlias))
	})
}

func TestTargetResource(t *testing.T) {
	t.Run("PublicAliasResolvesToLocations", func(t *testing.T) {
		assert.Equal(t, "locations", TargetResource(PublicResourceAlias))
	})

	t.Run("OrdinaryResourceMapsToItself", func(t *testing.T) {
		assert.Equal(t, "orders", TargetResource("orders"))
	})
}

func TestCollectionLink(t *testing.T) {
	t.Run("OrdinaryResource", func(t *testing.T) {
		assert.Equal(t, "colls/orders", CollectionLink("orders"))
	})

	t.Run("PublicAliasLinksToBackingCollection", func(t *testing.T) {
		assert.Equal(t, "colls/locations", CollectionLink(PublicResourceAlias))
	})
}
