package store

import (
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/models"
)

// snapshot is one user's mirrored view of persisted state: active unhabits,
// archived unhabits and logs, each ordered newest-first. Transitions are pure
// functions so cache behavior is testable without a database. An unhabit id
// appears in exactly one of the two unhabit lists, never both.
type snapshot struct {
	Active   []models.Unhabit
	Archived []models.Unhabit
	Logs     []models.Log
}

func setActive(s snapshot, unhabits []models.Unhabit, logs []models.Log) snapshot {
	s.Active = unhabits
	s.Logs = logs
	return s
}

func setArchived(s snapshot, unhabits []models.Unhabit) snapshot {
	s.Archived = unhabits
	return s
}

func prependActive(s snapshot, u models.Unhabit) snapshot {
	s.Active = append([]models.Unhabit{u}, s.Active...)
	return s
}

// placeActive removes the unhabit from both lists and prepends it to the
// active list, so the move is atomic with respect to the partition.
func placeActive(s snapshot, u models.Unhabit) snapshot {
	s.Active = append([]models.Unhabit{u}, withoutUnhabit(s.Active, u.ID)...)
	s.Archived = withoutUnhabit(s.Archived, u.ID)
	return s
}

// placeArchived is the inverse move of placeActive.
func placeArchived(s snapshot, u models.Unhabit) snapshot {
	s.Archived = append([]models.Unhabit{u}, withoutUnhabit(s.Archived, u.ID)...)
	s.Active = withoutUnhabit(s.Active, u.ID)
	return s
}

// mergeUnhabit replaces the matching entry in whichever list holds it,
// preserving its position.
func mergeUnhabit(s snapshot, u models.Unhabit) snapshot {
	s.Active = replaceUnhabit(s.Active, u)
	s.Archived = replaceUnhabit(s.Archived, u)
	return s
}

// upsertLog replaces the matching log in place, or prepends when unseen.
func upsertLog(s snapshot, l models.Log) snapshot {
	for i, existing := range s.Logs {
		if existing.ID == l.ID {
			logs := make([]models.Log, len(s.Logs))
			copy(logs, s.Logs)
			logs[i] = l
			s.Logs = logs
			return s
		}
	}
	s.Logs = append([]models.Log{l}, s.Logs...)
	return s
}

// patchLog updates only the count and updated-timestamp of the matching log;
// every other field is preserved.
func patchLog(s snapshot, l models.Log) snapshot {
	logs := make([]models.Log, len(s.Logs))
	copy(logs, s.Logs)
	for i, existing := range logs {
		if existing.ID == l.ID {
			logs[i].Count = l.Count
			logs[i].UpdatedAt = l.UpdatedAt
			break
		}
	}
	s.Logs = logs
	return s
}

func withoutUnhabit(list []models.Unhabit, id uuid.UUID) []models.Unhabit {
	out := make([]models.Unhabit, 0, len(list))
	for _, u := range list {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func replaceUnhabit(list []models.Unhabit, u models.Unhabit) []models.Unhabit {
	for i, existing := range list {
		if existing.ID == u.ID {
			out := make([]models.Unhabit, len(list))
			copy(out, list)
			out[i] = u
			return out
		}
	}
	return list
}
