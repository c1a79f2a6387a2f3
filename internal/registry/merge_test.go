package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, createdAt time.Time) Record {
	return Record{ID: id, Name: "r-" + id, CreatedAt: createdAt}
}

func TestMergeNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	local := []Record{rec("l1", base.Add(2 * time.Hour))}
	remote := []Record{rec("r1", base.Add(3 * time.Hour)), rec("r2", base)}

	merged := Merge(local, remote)
	require.Len(t, merged, 3)
	assert.Equal(t, "r1", merged[0].ID)
	assert.Equal(t, "l1", merged[1].ID)
	assert.Equal(t, "r2", merged[2].ID)
}

func TestMergeKeepsAllRecords(t *testing.T) {
	now := time.Now()
	local := []Record{rec("a", now), rec("b", now.Add(-time.Minute))}

	merged := Merge(local, nil)
	assert.Len(t, merged, 2)

	merged = Merge(nil, nil)
	assert.Empty(t, merged)
}

func TestMergeUnparseableTimestampSortsLast(t *testing.T) {
	now := time.Now()
	remote := []Record{
		rec("broken", time.Time{}),
		rec("old", now.Add(-48*time.Hour)),
		rec("new", now),
	}

	merged := Merge(nil, remote)
	require.Len(t, merged, 3)
	assert.Equal(t, "broken", merged[2].ID)
}

func TestMergeDoesNotDeduplicate(t *testing.T) {
	now := time.Now()
	local := []Record{{ID: "l1", Phone: "5511999999999", CreatedAt: now}}
	remote := []Record{{ID: "r1", Phone: "5511999999999", CreatedAt: now.Add(-time.Hour)}}

	assert.Len(t, Merge(local, remote), 2)
}

func TestFindByPhone(t *testing.T) {
	records := []Record{
		{ID: "a", Phone: "5511988887777"},
		{ID: "b", Phone: "5521933334444"},
	}

	found, ok := FindByPhone(records, "5521933334444")
	require.True(t, ok)
	assert.Equal(t, "b", found.ID)

	_, ok = FindByPhone(records, "5500000000000")
	assert.False(t, ok)

	// An empty needle never matches, even against an empty stored phone.
	records = append(records, Record{ID: "c", Phone: ""})
	_, ok = FindByPhone(records, "")
	assert.False(t, ok)
}
