package tips

import (
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
)

// DefaultMaxDaysAhead bounds forward navigation.
const DefaultMaxDaysAhead = 6

// Navigator holds the selected day. Past days are unbounded, future days are limited to
// maxDaysAhead after today.
type Navigator struct {
	mu           sync.Mutex
	selected     time.Time
	maxDaysAhead int
	nowTime      func() time.Time
}

type NavigatorOption func(*Navigator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) NavigatorOption {
	return func(n *Navigator) {
		n.nowTime = nowFunc
	}
}

func WithMaxDaysAhead(days int) NavigatorOption {
	return func(n *Navigator) {
		if days >= 0 {
			n.maxDaysAhead = days
		}
	}
}

// NewNavigator starts on today.
func NewNavigator(options ...NavigatorOption) *Navigator {
	n := &Navigator{maxDaysAhead: DefaultMaxDaysAhead, nowTime: time.Now}
	for _, opt := range options {
		opt(n)
	}
	n.selected = DayOf(n.nowTime())
	return n
}

func (n *Navigator) Selected() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

func (n *Navigator) Label() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Label(n.selected, n.nowTime())
}

// Latest is the last selectable day.
func (n *Navigator) Latest() time.Time {
	return AddDays(n.nowTime(), n.maxDaysAhead)
}

// CanNext reports whether Next would move.
func (n *Navigator) CanNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected.Before(n.Latest())
}

// Next moves one calendar day forward. At the bound it stays put and returns
// ErrNavigationBound.
func (n *Navigator) Next() (time.Time, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	next := AddDays(n.selected, 1)
	if next.After(n.Latest()) {
		return n.selected, apperrors.ErrNavigationBound
	}
	n.selected = next
	return n.selected, nil
}

func (n *Navigator) Prev() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = AddDays(n.selected, -1)
	return n.selected
}

func (n *Navigator) Today() time.Time {
	return n.jump(0)
}

func (n *Navigator) Yesterday() time.Time {
	return n.jump(-1)
}

// Tomorrow is always within the bound unless maxDaysAhead is zero, in which case it
// selects today.
func (n *Navigator) Tomorrow() time.Time {
	if n.maxDaysAhead == 0 {
		return n.jump(0)
	}
	return n.jump(1)
}

func (n *Navigator) jump(days int) time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = AddDays(n.nowTime(), days)
	return n.selected
}

// Select picks an arbitrary day, normalised to DayOf in the navigator's local
// calendar. Days past the bound are refused.
func (n *Navigator) Select(day time.Time) (time.Time, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.nowTime()
	target := DayOf(day.In(now.Location()))
	if target.After(n.Latest()) {
		return n.selected, fmt.Errorf("%w: %s is more than %d days ahead", apperrors.ErrNavigationBound, DayKey(target), n.maxDaysAhead)
	}
	n.selected = target
	return n.selected, nil
}

// SelectKey is Select for a "YYYY-MM-DD" key.
func (n *Navigator) SelectKey(key string) (time.Time, error) {
	day, err := ParseDayKey(key, n.nowTime().Location())
	if err != nil {
		return n.Selected(), fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", key, err)
	}
	return n.Select(day)
}
