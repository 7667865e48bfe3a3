package tips

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/notify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	MsgLoadFailed       = "Error loading tips"
	MsgUnknownCategory  = "Some tips had an unrecognised category and were set aside"
	MsgRejectedCategory = "Tips could not be shown: unrecognised category received"
)

// Source fetches the tips published for one day key.
type Source interface {
	GamesByDate(ctx context.Context, day string) ([]games.Game, error)
}

// State is what a tips view renders. Set is the last successfully loaded bucket set, it
// survives failed loads.
type State struct {
	Requested  string // day key of the latest request
	Set        BucketSet
	Loading    bool
	Err        error // error of the latest completed request, nil on success
	Generation uint64
	LoadedAt   time.Time
}

// Loader loads bucket sets and makes sure only the latest request updates State.
// Starting a new load cancels the one in flight.
type Loader struct {
	source   Source
	policy   Policy
	notifier notify.Notifier
	logger   zerolog.Logger
	nowTime  func() time.Time

	mu          sync.Mutex
	generation  uint64
	cancel      context.CancelFunc
	state       State
	lastDay     string
	lastRefresh int
	synced      bool
}

type LoaderOption func(*Loader)

func WithPolicy(p Policy) LoaderOption {
	return func(l *Loader) {
		l.policy = p
	}
}

func WithNotifier(n notify.Notifier) LoaderOption {
	return func(l *Loader) {
		l.notifier = n
	}
}

func WithLogger(logger zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithLoaderNowTime sets the now time function (primarily for testing)
func WithLoaderNowTime(nowFunc func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.nowTime = nowFunc
	}
}

func NewLoader(source Source, options ...LoaderOption) (*Loader, error) {
	if source == nil {
		return nil, errors.New("[NewLoader] source is required")
	}
	l := &Loader{
		source:   source,
		policy:   PolicyQuarantine,
		notifier: notify.Discard{},
		logger:   zerolog.Nop(),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	return l, nil
}

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load fetches the tips for date's calendar day and partitions them. A load that was
// superseded by a newer one returns ErrSuperseded and leaves State alone. A failed load
// keeps the previous Set. Loading is false once the latest request has completed.
func (l *Loader) Load(ctx context.Context, date time.Time) (BucketSet, error) {
	day := DayKey(date)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	gen := l.generation
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state.Requested = day
	l.state.Loading = true
	l.state.Generation = gen
	l.mu.Unlock()
	defer cancel()

	records, err := l.source.GamesByDate(ctx, day)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		l.logger.Debug().Str("day", day).Uint64("generation", gen).Msg("discarding superseded tips response")
		return BucketSet{}, apperrors.ErrSuperseded
	}
	l.state.Loading = false
	l.cancel = nil

	if err != nil {
		l.state.Err = errors.Wrapf(err, "[Loader.Load] %s", day)
		l.logger.Error().Err(err).Str("day", day).Msg("failed to load tips")
		notify.Error(l.notifier, MsgLoadFailed)
		return l.state.Set, l.state.Err
	}

	set, err := Partition(day, records, l.policy)
	if err != nil {
		l.state.Err = err
		l.logger.Error().Err(err).Str("day", day).Msg("rejected tips response")
		notify.Error(l.notifier, MsgRejectedCategory)
		return l.state.Set, err
	}
	if dropped := len(records) - set.Len() - len(set.Quarantined); dropped > 0 || len(set.Quarantined) > 0 {
		l.logger.Warn().
			Str("day", day).
			Str("policy", l.policy.String()).
			Int("unknown", dropped+len(set.Quarantined)).
			Msg("tips with unrecognised category")
		if l.policy == PolicyQuarantine {
			notify.Warn(l.notifier, MsgUnknownCategory)
		}
	}

	l.state.Set = set
	l.state.Err = nil
	l.state.LoadedAt = l.nowTime()
	return set, nil
}

// Reset forgets the loaded set and the last Sync, and drops any load in flight. Call it
// when the session ends so the next Sync always fetches, whatever counter it brings.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
	l.state = State{Generation: l.generation}
	l.synced = false
	l.lastDay = ""
	l.lastRefresh = 0
}

// Sync loads date when either its day or refreshCounter differs from the previous Sync.
// It reports whether a load happened.
func (l *Loader) Sync(ctx context.Context, date time.Time, refreshCounter int) (BucketSet, bool, error) {
	day := DayKey(date)

	l.mu.Lock()
	if l.synced && l.lastDay == day && l.lastRefresh == refreshCounter {
		set := l.state.Set
		l.mu.Unlock()
		return set, false, nil
	}
	l.synced = true
	l.lastDay = day
	l.lastRefresh = refreshCounter
	l.mu.Unlock()

	set, err := l.Load(ctx, date)
	return set, true, err
}
