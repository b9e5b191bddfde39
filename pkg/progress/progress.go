package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressEvent represents a single progress update event.
type ProgressEvent struct {
	// Status is one of "initialized", "started", "processing", "completed", "failed".
	Status string `json:"status"`
	// Percentage represents the progress completion from 0.0 to 100.0.
	Percentage float64 `json:"percentage"`
	// Stage describes the current phase (e.g., "encoding").
	Stage string `json:"stage"`
	// Timestamp marks when the event occurred in RFC3339 format.
	Timestamp string `json:"timestamp"`
}

// Reporter receives progress for a long-running encode. Units are
// milliseconds of media time as printed by the encoder.
type Reporter interface {
	// Start sets the total media duration in milliseconds.
	Start(total int64)
	// Update sets the current encoded position in milliseconds.
	Update(current int64, stage string)
	// Complete marks the operation as finished.
	Complete()
	// Abort marks the operation as failed, leaving the position where it was.
	Abort()
	// Updates returns a channel of events, closed by Complete or Abort.
	Updates() <-chan ProgressEvent
}

type reporterOptions struct {
	throttle    time.Duration
	description string
	writer      io.Writer
}

// ReporterOption is a function type used to configure a DefaultReporter.
type ReporterOption func(*reporterOptions)

// WithThrottle sets the minimum time interval between events sent to the Updates channel.
func WithThrottle(duration time.Duration) ReporterOption {
	return func(opts *reporterOptions) {
		opts.throttle = duration
	}
}

// WithDescription sets the description text for the console progress bar.
func WithDescription(desc string) ReporterOption {
	return func(opts *reporterOptions) {
		opts.description = desc
	}
}

// WithWriter sets where the bar is drawn. Defaults to os.Stderr.
func WithWriter(w io.Writer) ReporterOption {
	return func(opts *reporterOptions) {
		opts.writer = w
	}
}

// DefaultReporter draws a github.com/schollz/progressbar/v3 bar and sends
// ProgressEvent updates to a channel.
type DefaultReporter struct {
	Total      int64
	Current    int64
	Bar        *progressbar.ProgressBar
	Event      ProgressEvent
	opts       reporterOptions
	updatesCh  chan ProgressEvent
	lastUpdate time.Time
	closed     bool
	mu         sync.Mutex
}

// NewReporter creates a new DefaultReporter.
func NewReporter(opts ...ReporterOption) *DefaultReporter {
	options := reporterOptions{
		description: "Encoding...",
		writer:      os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &DefaultReporter{
		opts: options,
		Event: ProgressEvent{
			Status:    "initialized",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		lastUpdate: time.Now(),
		updatesCh:  make(chan ProgressEvent, 10),
	}
}

// Start initializes the bar for a media duration of total milliseconds.
func (r *DefaultReporter) Start(total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.Total = total
	r.Current = 0
	r.Event.Status = "started"
	r.Event.Percentage = 0
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	r.Bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(r.opts.description),
		progressbar.OptionSetWriter(r.opts.writer),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	r.sendUpdateInternal(true)
}

// Update moves the bar to current milliseconds. Values past Total are capped.
func (r *DefaultReporter) Update(current int64, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Bar == nil {
		return
	}
	if current > r.Total {
		current = r.Total
	}
	if current < 0 {
		current = 0
	}
	r.Current = current

	percentage := 0.0
	if r.Total > 0 {
		percentage = float64(current) / float64(r.Total) * 100
	}
	r.Event.Percentage = percentage
	r.Event.Stage = stage
	r.Event.Status = "processing"
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	_ = r.Bar.Set64(current)

	r.sendUpdateInternal(false)
}

// Complete finishes the bar, sends a final event and closes the Updates channel.
func (r *DefaultReporter) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if r.Bar != nil {
		_ = r.Bar.Finish()
		r.Bar = nil
	}
	r.Current = r.Total
	r.Event.Percentage = 100
	r.Event.Status = "completed"
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	r.sendUpdateInternal(true)
	r.closed = true
	close(r.updatesCh)
}

// Abort stops the bar at its current position, sends a "failed" event and
// closes the Updates channel. It is a no-op after Complete or Abort.
func (r *DefaultReporter) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if r.Bar != nil {
		_ = r.Bar.Exit()
		r.Bar = nil
	}
	r.Event.Status = "failed"
	r.Event.Timestamp = time.Now().Format(time.RFC3339)

	r.sendUpdateInternal(true)
	r.closed = true
	close(r.updatesCh)
}

// Updates returns the channel for receiving ProgressEvent updates.
func (r *DefaultReporter) Updates() <-chan ProgressEvent {
	return r.updatesCh
}

// sendUpdateInternal requires the lock to be held by the caller.
func (r *DefaultReporter) sendUpdateInternal(force bool) {
	now := time.Now()
	if !force && now.Sub(r.lastUpdate) < r.opts.throttle {
		return
	}
	r.lastUpdate = now

	select {
	case r.updatesCh <- r.Event:
	default:
	}
}
