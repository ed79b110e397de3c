// Package timeline answers activity-history queries for a user, including
// "today" bucketed by the client's timezone offset.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nhle/todo-journal/internal/model"
	"github.com/nhle/todo-journal/internal/store"
)

// ErrInvalidRange is returned for negative paging values and timezone
// offsets outside the real-world range.
var ErrInvalidRange = errors.New("invalid range")

// Client offsets follow the JavaScript getTimezoneOffset convention: minutes
// to add to local time to reach UTC, so east of UTC is negative.
const (
	MinOffsetMinutes = -14 * 60 // UTC+14
	MaxOffsetMinutes = 12 * 60  // UTC-12
)

// ActivityReader is the part of the record store the timeline reads from.
type ActivityReader interface {
	ListActivity(ctx context.Context, filter store.ActivityFilter) ([]model.ActivityLogEntry, error)
}

// Service serves timeline reads.
type Service struct {
	reader   ActivityReader
	maxLimit int
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to compute "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxLimit caps the page size of ListRecent and ListForTodo.
func WithMaxLimit(n int) Option {
	return func(s *Service) { s.maxLimit = n }
}

// NewService returns a timeline service reading from r.
func NewService(r ActivityReader, opts ...Option) *Service {
	s := &Service{reader: r, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRecent returns the user's entries newest first, skipping offset and
// returning at most limit.
func (s *Service) ListRecent(ctx context.Context, userID string, offset, limit int) ([]model.ActivityLogEntry, error) {
	if err := validatePage(offset, limit); err != nil {
		return nil, err
	}
	if limit == 0 {
		return []model.ActivityLogEntry{}, nil
	}
	return s.reader.ListActivity(ctx, store.ActivityFilter{
		UserID: userID,
		Offset: offset,
		Limit:  s.clamp(limit),
	})
}

// ListForTodo returns the entries still attached to one todo, newest first.
func (s *Service) ListForTodo(ctx context.Context, userID, todoID string, offset, limit int) ([]model.ActivityLogEntry, error) {
	if err := validatePage(offset, limit); err != nil {
		return nil, err
	}
	if limit == 0 {
		return []model.ActivityLogEntry{}, nil
	}
	return s.reader.ListActivity(ctx, store.ActivityFilter{
		UserID: userID,
		TodoID: &todoID,
		Offset: offset,
		Limit:  s.clamp(limit),
	})
}

// ListToday returns every entry at or after the start of the client's local
// day, newest first. The boundary is recomputed on each call.
func (s *Service) ListToday(ctx context.Context, userID string, tzOffsetMinutes int) ([]model.ActivityLogEntry, error) {
	start, err := TodayStart(s.now(), tzOffsetMinutes)
	if err != nil {
		return nil, err
	}
	return s.reader.ListActivity(ctx, store.ActivityFilter{
		UserID: userID,
		Since:  &start,
	})
}

// TodayStart returns, in UTC, the instant of local midnight for the day
// containing now at the given client offset.
func TodayStart(now time.Time, tzOffsetMinutes int) (time.Time, error) {
	if err := ValidateOffset(tzOffsetMinutes); err != nil {
		return time.Time{}, err
	}
	zone := time.FixedZone("client", -tzOffsetMinutes*60)
	local := now.In(zone)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	return midnight.UTC(), nil
}

// ValidateOffset rejects client offsets outside [MinOffsetMinutes, MaxOffsetMinutes].
func ValidateOffset(tzOffsetMinutes int) error {
	if tzOffsetMinutes < MinOffsetMinutes || tzOffsetMinutes > MaxOffsetMinutes {
		return fmt.Errorf("%w: timezone offset %d minutes", ErrInvalidRange, tzOffsetMinutes)
	}
	return nil
}

func validatePage(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset %d", ErrInvalidRange, offset)
	}
	if limit < 0 {
		return fmt.Errorf("%w: limit %d", ErrInvalidRange, limit)
	}
	return nil
}

func (s *Service) clamp(limit int) int {
	if s.maxLimit > 0 && limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
