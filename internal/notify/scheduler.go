package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/models"
	"github.com/marta/unhabits-api/pkg/logger"
)

// ReminderTitle and the body prefix match what users see on every check-in
// reminder.
const ReminderTitle = "Unhabits Reminder"

var ErrNoReminderTime = errors.New("unhabit has no reminder time")

// Tag returns the stable notification tag for an unhabit. Keyed by id, not
// name, so two same-named unhabits never collide.
func Tag(unhabitID uuid.UUID) string {
	return "unhabit-" + unhabitID.String()
}

// NextTrigger computes the next instant a reminder at hhmm ("HH:MM", local
// time of now) should fire: today if that time is still ahead, otherwise
// tomorrow.
func NextTrigger(now time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}

	trigger := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if trigger.Before(now) {
		trigger = trigger.AddDate(0, 0, 1)
	}
	return trigger, nil
}

type reminder struct {
	timer     *time.Timer
	at        time.Time
	userID    uuid.UUID
	unhabitID uuid.UUID
	name      string
	timeOfDay string
}

// Scheduler arms one reminder per unhabit, keyed by tag. When a reminder
// fires it is delivered through the Notifier and re-armed for the next day.
type Scheduler struct {
	notifier Notifier
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]*reminder
}

// NewScheduler builds a scheduler over the given delivery capability. A nil
// now falls back to time.Now.
func NewScheduler(notifier Notifier, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		notifier: notifier,
		now:      now,
		pending:  make(map[string]*reminder),
	}
}

// RequestPermission reports whether reminders can reach the user. False when
// the capability is absent or the user has no registered device.
func (s *Scheduler) RequestPermission(ctx context.Context, userID uuid.UUID) bool {
	if s.notifier == nil || !s.notifier.Available() {
		return false
	}
	return s.notifier.CanDeliver(ctx, userID)
}

// Schedule arms the unhabit's reminder at its next trigger instant,
// replacing any reminder already pending under the same tag.
func (s *Scheduler) Schedule(u models.Unhabit) error {
	if u.NotificationTime == nil {
		return ErrNoReminderTime
	}

	now := s.now()
	at, err := NextTrigger(now, *u.NotificationTime)
	if err != nil {
		return err
	}

	tag := Tag(u.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.pending[tag]; ok {
		existing.timer.Stop()
	}

	r := &reminder{
		at:        at,
		userID:    u.UserID,
		unhabitID: u.ID,
		name:      u.Name,
		timeOfDay: *u.NotificationTime,
	}
	r.timer = time.AfterFunc(at.Sub(now), func() { s.fire(tag) })
	s.pending[tag] = r
	return nil
}

// Cancel dismisses every pending reminder carrying the unhabit's tag.
func (s *Scheduler) Cancel(unhabitID uuid.UUID) {
	tag := Tag(unhabitID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.pending[tag]; ok {
		r.timer.Stop()
		delete(s.pending, tag)
	}
}

// Pending returns the trigger instants currently armed under the tag.
func (s *Scheduler) Pending(tag string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	var at []time.Time
	if r, ok := s.pending[tag]; ok {
		at = append(at, r.at)
	}
	return at
}

// ScheduleAll arms reminders for every unhabit with notifications enabled.
// Used at boot to re-arm across restarts.
func (s *Scheduler) ScheduleAll(unhabits []models.Unhabit) {
	for _, u := range unhabits {
		if !u.NotificationEnabled || u.NotificationTime == nil {
			continue
		}
		if err := s.Schedule(u); err != nil {
			logger.Log.WithError(err).WithField("unhabit", u.ID).Warn("failed to arm reminder")
		}
	}
}

// Stop cancels every pending reminder.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for tag, r := range s.pending {
		r.timer.Stop()
		delete(s.pending, tag)
	}
}

// fire delivers the reminder and re-arms it for the next day. Delivery
// failures are logged and swallowed here; they never reach store state.
func (s *Scheduler) fire(tag string) {
	s.mu.Lock()
	r, ok := s.pending[tag]
	if !ok {
		s.mu.Unlock()
		return
	}

	now := s.now()
	next, err := NextTrigger(now, r.timeOfDay)
	if err == nil {
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		r.at = next
		r.timer = time.AfterFunc(next.Sub(now), func() { s.fire(tag) })
	} else {
		delete(s.pending, tag)
	}
	s.mu.Unlock()

	if s.notifier == nil || !s.notifier.Available() {
		return
	}
	if err := s.notifier.Send(context.Background(), r.userID, ReminderTitle,
		"Time to check in: "+r.name,
		map[string]string{"unhabitId": r.unhabitID.String()}); err != nil {
		logger.Log.WithError(err).WithField("tag", tag).Warn("reminder delivery failed")
	}
}
