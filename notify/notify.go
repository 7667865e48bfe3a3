package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/rs/zerolog"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Auto-dismiss durations per level.
const (
	SuccessDuration = 3 * time.Second
	InfoDuration    = 4 * time.Second
	WarnDuration    = 5 * time.Second
	ErrorDuration   = 6 * time.Second
)

// Notification is a non-blocking, auto-dismissing message for the user.
type Notification struct {
	Level    Level
	Message  string
	Duration time.Duration
}

func New(level Level, message string) Notification {
	d := InfoDuration
	switch level {
	case LevelSuccess:
		d = SuccessDuration
	case LevelWarn:
		d = WarnDuration
	case LevelError:
		d = ErrorDuration
	}
	return Notification{Level: level, Message: message, Duration: d}
}

// Notifier delivers notifications. Implementations must not block the caller.
type Notifier interface {
	Notify(n Notification)
}

func Success(n Notifier, message string) { n.Notify(New(LevelSuccess, message)) }
func Info(n Notifier, message string)    { n.Notify(New(LevelInfo, message)) }
func Warn(n Notifier, message string)    { n.Notify(New(LevelWarn, message)) }
func Error(n Notifier, message string)   { n.Notify(New(LevelError, message)) }

var levelColours = map[Level]string{
	LevelInfo:    utils.Cyan,
	LevelSuccess: utils.Green,
	LevelWarn:    utils.Yellow,
	LevelError:   utils.Red,
}

var levelSymbols = map[Level]string{
	LevelInfo:    "i",
	LevelSuccess: "✓",
	LevelWarn:    "!",
	LevelError:   "✗",
}

// Console writes one line per notification, coloured by level unless plain is set.
type Console struct {
	w     io.Writer
	plain bool
	mu    sync.Mutex
}

func NewConsole(w io.Writer, plain bool) *Console {
	return &Console{w: w, plain: plain}
}

func (c *Console) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf("%s %s", levelSymbols[n.Level], n.Message)
	if !c.plain {
		line = utils.Colourise(levelColours[n.Level], line)
	}
	fmt.Fprintln(c.w, line)
}

// Log forwards notifications to a zerolog logger.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(n Notification) {
	var event *zerolog.Event
	switch n.Level {
	case LevelError:
		event = l.logger.Error()
	case LevelWarn:
		event = l.logger.Warn()
	default:
		event = l.logger.Info()
	}
	event.Str("level_name", n.Level.String()).Dur("dismiss_after", n.Duration).Msg(n.Message)
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}

// Recorder keeps every notification; used by tests.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.seen...)
}

// Last returns the most recent notification, or the zero value when none.
func (r *Recorder) Last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return Notification{}
	}
	return r.seen[len(r.seen)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
