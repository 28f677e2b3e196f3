package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the single source of truth for each user's unhabits and logs
// within a session. Every write goes to the database first; on success the
// mirrored snapshot is patched so reads between refetches stay consistent.
// A failed operation leaves the snapshot untouched.
type Store struct {
	db *gorm.DB

	mu     sync.Mutex
	byUser map[uuid.UUID]snapshot
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		byUser: make(map[uuid.UUID]snapshot),
	}
}

// FetchActive loads all non-archived unhabits newest-first plus all logs by
// date descending, replacing the active and log slots of the snapshot. The
// archived slot is independent and untouched.
func (s *Store) FetchActive(ctx context.Context, userID uuid.UUID) ([]models.Unhabit, []models.Log, error) {
	if userID == uuid.Nil {
		return nil, nil, ErrNotAuthenticated
	}

	var unhabits []models.Unhabit
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at DESC").
		Find(&unhabits).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch unhabits: %w", err)
	}

	var logs []models.Log
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, nil, fmt.Errorf("fetch logs: %w", err)
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return setActive(snap, unhabits, logs)
	})
	return unhabits, logs, nil
}

// FetchArchived loads archived unhabits newest-first into their own slot.
func (s *Store) FetchArchived(ctx context.Context, userID uuid.UUID) ([]models.Unhabit, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var unhabits []models.Unhabit
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, true).
		Order("created_at DESC").
		Find(&unhabits).Error; err != nil {
		return nil, fmt.Errorf("fetch archived unhabits: %w", err)
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return setArchived(snap, unhabits)
	})
	return unhabits, nil
}

// AddUnhabit persists a new unhabit for the user and prepends it to the
// active view.
func (s *Store) AddUnhabit(ctx context.Context, userID uuid.UUID, req models.CreateUnhabitRequest) (*models.Unhabit, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = models.FrequencyDaily
	}

	unhabit := models.Unhabit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Goal:        req.Goal,
		Frequency:   frequency,
		Target:      req.Target,
		Archived:    false,
	}

	if err := s.db.WithContext(ctx).Create(&unhabit).Error; err != nil {
		return nil, fmt.Errorf("create unhabit: %w", err)
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return prependActive(snap, unhabit)
	})
	return &unhabit, nil
}

// LogOccurrence records one occurrence of the unhabit on the given day. The
// first occurrence inserts a row with count 1; later ones increment the
// existing row atomically via the (unhabit, day) uniqueness, so two
// near-simultaneous calls can never produce two rows for one day.
func (s *Store) LogOccurrence(ctx context.Context, userID, unhabitID uuid.UUID, day string, note *string) (*models.Log, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if _, err := time.Parse(models.DayFormat, day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}

	var unhabit models.Unhabit
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", unhabitID, userID).
		First(&unhabit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find unhabit: %w", err)
	}

	entry := models.Log{
		UserID:    userID,
		UnhabitID: unhabitID,
		Date:      day,
		Count:     1,
		Note:      note,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "unhabit_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": time.Now(),
			}),
		}).
		Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("upsert log: %w", err)
	}

	// Re-read: on conflict the pre-existing row keeps its id and the
	// incremented count.
	var row models.Log
	if err := s.db.WithContext(ctx).
		Where("unhabit_id = ? AND date = ?", unhabitID, day).
		First(&row).Error; err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return upsertLog(snap, row)
	})
	return &row, nil
}

// UpdateLog sets a new count on an existing log. Only the count and the
// updated-timestamp change; all other fields are preserved.
func (s *Store) UpdateLog(ctx context.Context, userID, logID uuid.UUID, count int) (*models.Log, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}

	result := s.db.WithContext(ctx).
		Model(&models.Log{}).
		Where("id = ? AND user_id = ?", logID, userID).
		Update("count", count)
	if result.Error != nil {
		return nil, fmt.Errorf("update log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var row models.Log
	if err := s.db.WithContext(ctx).First(&row, logID).Error; err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return patchLog(snap, row)
	})
	return &row, nil
}

// UpdateUnhabit persists only the supplied fields and merges them into the
// cached entry. Notification toggles go through here as well.
func (s *Store) UpdateUnhabit(ctx context.Context, userID, unhabitID uuid.UUID, req models.UpdateUnhabitRequest) (*models.Unhabit, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Goal != nil {
		updates["goal"] = *req.Goal
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.Target != nil {
		updates["target"] = *req.Target
	}
	if req.NotificationEnabled != nil {
		updates["notification_enabled"] = *req.NotificationEnabled
	}
	if req.NotificationTime != nil {
		updates["notification_time"] = *req.NotificationTime
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).
			Model(&models.Unhabit{}).
			Where("id = ? AND user_id = ?", unhabitID, userID).
			Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("update unhabit: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	row, err := s.readUnhabit(ctx, userID, unhabitID)
	if err != nil {
		return nil, err
	}

	s.apply(userID, func(snap snapshot) snapshot {
		return mergeUnhabit(snap, *row)
	})
	return row, nil
}

// ArchiveUnhabit flips the unhabit into the archived view. The cached entry
// moves between the two lists in one step, so no intermediate state has it
// in both or neither.
func (s *Store) ArchiveUnhabit(ctx context.Context, userID, unhabitID uuid.UUID) (*models.Unhabit, error) {
	return s.setArchivedFlag(ctx, userID, unhabitID, true)
}

// RestoreUnhabit is the inverse move of ArchiveUnhabit.
func (s *Store) RestoreUnhabit(ctx context.Context, userID, unhabitID uuid.UUID) (*models.Unhabit, error) {
	return s.setArchivedFlag(ctx, userID, unhabitID, false)
}

func (s *Store) setArchivedFlag(ctx context.Context, userID, unhabitID uuid.UUID, archived bool) (*models.Unhabit, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	result := s.db.WithContext(ctx).
		Model(&models.Unhabit{}).
		Where("id = ? AND user_id = ?", unhabitID, userID).
		Update("archived", archived)
	if result.Error != nil {
		return nil, fmt.Errorf("update unhabit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	row, err := s.readUnhabit(ctx, userID, unhabitID)
	if err != nil {
		return nil, err
	}

	s.apply(userID, func(snap snapshot) snapshot {
		if archived {
			return placeArchived(snap, *row)
		}
		return placeActive(snap, *row)
	})
	return row, nil
}

// GetUnhabit returns one of the user's unhabits by id, archived or not.
func (s *Store) GetUnhabit(ctx context.Context, userID, unhabitID uuid.UUID) (*models.Unhabit, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	return s.readUnhabit(ctx, userID, unhabitID)
}

// State returns copies of the user's cached lists. Mainly useful for
// inspecting the snapshot between fetches.
func (s *Store) State(userID uuid.UUID) (active, archived []models.Unhabit, logs []models.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.byUser[userID]
	active = append([]models.Unhabit(nil), snap.Active...)
	archived = append([]models.Unhabit(nil), snap.Archived...)
	logs = append([]models.Log(nil), snap.Logs...)
	return active, archived, logs
}

func (s *Store) readUnhabit(ctx context.Context, userID, unhabitID uuid.UUID) (*models.Unhabit, error) {
	var row models.Unhabit
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", unhabitID, userID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read unhabit: %w", err)
	}
	return &row, nil
}

func (s *Store) apply(userID uuid.UUID, reduce func(snapshot) snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = reduce(s.byUser[userID])
}
