package localstore

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafune/rede-guti/internal/devstore"
	"github.com/kafune/rede-guti/internal/registry"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(devstore.Open(filepath.Join(t.TempDir(), "state.json")))
}

func TestRoundTrip(t *testing.T) {
	store := newStore(t)

	records := []registry.Record{
		{
			ID:               store.NewID(),
			Name:             "Pr. José",
			Phone:            "5511977776666",
			ChurchName:       "Assembleia",
			MunicipalityName: "Santos",
			CreatedAt:        time.Now().Truncate(time.Second),
			Status:           registry.StatusActive,
			IndicatedBy:      registry.PastorIntake,
			Kind:             registry.KindPastor,
			Pastor:           &registry.PastorInfo{Denomination: "Assembleia de Deus"},
		},
	}
	require.NoError(t, store.Save(records))

	loaded := store.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, records[0].ID, loaded[0].ID)
	assert.Equal(t, registry.KindPastor, loaded[0].Kind)
	require.NotNil(t, loaded[0].Pastor)
	assert.Equal(t, "Assembleia de Deus", loaded[0].Pastor.Denomination)
}

func TestLoadEmptyStore(t *testing.T) {
	assert.Empty(t, newStore(t).Load())
}

func TestLoadCoercesDegradedEntries(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Save([]registry.Record{
		{ID: "pastor-1", Name: "Sem tipo"},                                  // kind and status missing
		{ID: "", Name: "Sem id"},                                            // dropped
		{ID: "pastor-2", Name: "OK", Kind: registry.Kind("something-else")}, // kind forced back
	}))

	loaded := store.Load()
	require.Len(t, loaded, 2)
	for _, r := range loaded {
		assert.Equal(t, registry.KindPastor, r.Kind)
		assert.Equal(t, registry.StatusActive, r.Status)
		assert.False(t, r.CreatedAt.IsZero())
	}
}

func TestNewID(t *testing.T) {
	store := newStore(t)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := store.NewID()
		assert.True(t, strings.HasPrefix(id, registry.LocalIDPrefix))
		assert.False(t, seen[id], "duplicate local ID %s", id)
		seen[id] = true
	}
}
