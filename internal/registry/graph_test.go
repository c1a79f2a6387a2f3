package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferrer(t *testing.T) {
	records := []Record{
		{ID: "root", Name: "Raiz"},
		{ID: "child", Name: "Filho", ReferredBy: "root"},
		{ID: "dangling", Name: "Solto", ReferredBy: "deleted-id"},
	}

	referrer, ok := Referrer(records, records[1])
	require.True(t, ok)
	assert.Equal(t, "root", referrer.ID)

	_, ok = Referrer(records, records[0])
	assert.False(t, ok, "record without ReferredBy has no referrer")

	_, ok = Referrer(records, records[2])
	assert.False(t, ok, "dangling reference degrades to not-found")
}

func TestReferrals(t *testing.T) {
	now := time.Now()
	root := Record{ID: "root", Name: "Raiz"}
	records := []Record{
		{ID: "c2", ReferredBy: "root", CreatedAt: now},
		root,
		{ID: "c1", ReferredBy: "root", CreatedAt: now.Add(-time.Hour)},
		{ID: "other", ReferredBy: "someone-else"},
	}

	referrals := Referrals(records, root)
	require.Len(t, referrals, 2)
	// Order follows the input collection, not an internal index.
	assert.Equal(t, "c2", referrals[0].ID)
	assert.Equal(t, "c1", referrals[1].ID)
}

func TestReferralsNone(t *testing.T) {
	records := []Record{{ID: "a"}, {ID: "b", ReferredBy: "a"}}
	assert.Empty(t, Referrals(records, records[1]))
}
