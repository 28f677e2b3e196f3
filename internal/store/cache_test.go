package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unhabit(name string) models.Unhabit {
	return models.Unhabit{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      name,
		Frequency: models.FrequencyDaily,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func containsUnhabit(list []models.Unhabit, id uuid.UUID) bool {
	for _, u := range list {
		if u.ID == id {
			return true
		}
	}
	return false
}

func TestPlaceArchived_MovesBetweenLists(t *testing.T) {
	a := unhabit("Doomscrolling")
	b := unhabit("Nail biting")
	snap := snapshot{Active: []models.Unhabit{a, b}}

	archived := a
	archived.Archived = true
	snap = placeArchived(snap, archived)

	assert.False(t, containsUnhabit(snap.Active, a.ID), "archived unhabit must leave the active list")
	assert.True(t, containsUnhabit(snap.Archived, a.ID))
	assert.True(t, containsUnhabit(snap.Active, b.ID), "other unhabits stay put")
}

func TestPlaceActive_InverseOfPlaceArchived(t *testing.T) {
	a := unhabit("Doomscrolling")
	snap := snapshot{Active: []models.Unhabit{a}}

	archived := a
	archived.Archived = true
	snap = placeArchived(snap, archived)

	restored := archived
	restored.Archived = false
	snap = placeActive(snap, restored)

	assert.True(t, containsUnhabit(snap.Active, a.ID))
	assert.False(t, containsUnhabit(snap.Archived, a.ID))
}

// An id appears in exactly one of the two lists at every step of an
// archive/restore churn, never both, never neither.
func TestPartitionInvariant(t *testing.T) {
	a := unhabit("Doomscrolling")
	snap := snapshot{Active: []models.Unhabit{a}}

	check := func() {
		inActive := containsUnhabit(snap.Active, a.ID)
		inArchived := containsUnhabit(snap.Archived, a.ID)
		require.True(t, inActive != inArchived, "id must be in exactly one list")
	}

	check()
	for i := 0; i < 5; i++ {
		snap = placeArchived(snap, a)
		check()
		snap = placeActive(snap, a)
		check()
	}
}

func TestPlaceArchived_Prepends(t *testing.T) {
	old := unhabit("Old archived")
	old.Archived = true
	snap := snapshot{Archived: []models.Unhabit{old}}

	fresh := unhabit("Fresh")
	fresh.Archived = true
	snap = placeArchived(snap, fresh)

	require.Len(t, snap.Archived, 2)
	assert.Equal(t, fresh.ID, snap.Archived[0].ID, "newest move lands first")
}

func TestMergeUnhabit_ReplacesInPlace(t *testing.T) {
	a := unhabit("First")
	b := unhabit("Second")
	snap := snapshot{Active: []models.Unhabit{a, b}}

	edited := b
	edited.Name = "Second, edited"
	snap = mergeUnhabit(snap, edited)

	require.Len(t, snap.Active, 2)
	assert.Equal(t, a.ID, snap.Active[0].ID, "position preserved")
	assert.Equal(t, "Second, edited", snap.Active[1].Name)
}

func TestMergeUnhabit_UnknownIDIsNoop(t *testing.T) {
	a := unhabit("Only one")
	snap := snapshot{Active: []models.Unhabit{a}}

	snap = mergeUnhabit(snap, unhabit("Stranger"))

	require.Len(t, snap.Active, 1)
	assert.Empty(t, snap.Archived)
}

func TestPatchLog_OnlyCountAndUpdatedAt(t *testing.T) {
	note := "late night"
	created := time.Now().Add(-time.Hour)
	entry := models.Log{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		UnhabitID: uuid.New(),
		Date:      "2026-08-30",
		Count:     1,
		Note:      &note,
		CreatedAt: created,
		UpdatedAt: created,
	}
	snap := snapshot{Logs: []models.Log{entry}}

	patched := entry
	patched.Count = 4
	patched.UpdatedAt = time.Now()
	snap = patchLog(snap, patched)

	got := snap.Logs[0]
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, patched.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, entry.Date, got.Date)
	assert.Equal(t, entry.UnhabitID, got.UnhabitID)
	assert.Equal(t, entry.CreatedAt, got.CreatedAt)
	require.NotNil(t, got.Note)
	assert.Equal(t, note, *got.Note)
}

func TestUpsertLog_PrependsWhenUnseen(t *testing.T) {
	first := models.Log{ID: uuid.New(), Date: "2026-08-29", Count: 2}
	snap := snapshot{Logs: []models.Log{first}}

	second := models.Log{ID: uuid.New(), Date: "2026-08-30", Count: 1}
	snap = upsertLog(snap, second)

	require.Len(t, snap.Logs, 2)
	assert.Equal(t, second.ID, snap.Logs[0].ID)
}

func TestUpsertLog_ReplacesExisting(t *testing.T) {
	entry := models.Log{ID: uuid.New(), Date: "2026-08-30", Count: 1}
	snap := snapshot{Logs: []models.Log{entry}}

	bumped := entry
	bumped.Count = 2
	snap = upsertLog(snap, bumped)

	require.Len(t, snap.Logs, 1)
	assert.Equal(t, 2, snap.Logs[0].Count)
}

func TestSetActive_LeavesArchivedSlotAlone(t *testing.T) {
	archived := unhabit("Archived one")
	archived.Archived = true
	snap := snapshot{Archived: []models.Unhabit{archived}}

	fresh := unhabit("Fresh")
	snap = setActive(snap, []models.Unhabit{fresh}, nil)

	assert.True(t, containsUnhabit(snap.Archived, archived.ID))
	assert.True(t, containsUnhabit(snap.Active, fresh.ID))
}
