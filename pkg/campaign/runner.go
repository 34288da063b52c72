package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heraldmail/herald/pkg/attachment"
	"github.com/heraldmail/herald/pkg/logger"
	"github.com/heraldmail/herald/pkg/mailer"
	"github.com/heraldmail/herald/pkg/recipients"
	"github.com/heraldmail/herald/pkg/render"
)

// Runner executes campaigns against a single transport. It is safe for
// concurrent use, but runs at most one campaign at a time.
type Runner struct {
	sender  mailer.Sender
	engine  render.Engine
	log     *slog.Logger
	maxSize int64

	running   atomic.Bool
	cancelled atomic.Bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithEngine overrides the template engine. Default is the rich engine.
func WithEngine(e render.Engine) Option {
	return func(r *Runner) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithLogger sets the structured logger. Default discards.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMaxAttachmentSize caps individual attachment size in bytes.
func WithMaxAttachmentSize(n int64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// NewRunner returns a Runner delivering through sender.
func NewRunner(sender mailer.Sender, opts ...Option) *Runner {
	r := &Runner{
		sender:  sender,
		engine:  render.Rich{},
		log:     logger.NewNope(),
		maxSize: attachment.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Completion is delivered on the channel returned by Start once the run
// ends. Err is non-nil only for fatal pre-send failures; per-recipient
// delivery errors live in Result.
type Completion struct {
	Result *Result
	Err    error
}

// Run executes the campaign and blocks until it finishes or is cancelled.
// Returns ErrAlreadyRunning when another run is in flight.
func (r *Runner) Run(ctx context.Context, c *Campaign, l Listener) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.running.Store(false)
	return r.run(ctx, c, l)
}

// Start executes the campaign on its own goroutine and returns a channel
// that receives exactly one Completion. Returns ErrAlreadyRunning
// synchronously when another run is in flight.
func (r *Runner) Start(ctx context.Context, c *Campaign, l Listener) (<-chan Completion, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	done := make(chan Completion, 1)
	go func() {
		defer r.running.Store(false)
		res, err := r.run(ctx, c, l)
		done <- Completion{Result: res, Err: err}
		close(done)
	}()
	return done, nil
}

// Cancel requests the current run to stop after the in-flight recipient.
// Safe to call from any goroutine; a no-op when nothing is running.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
}

func (r *Runner) run(ctx context.Context, c *Campaign, l Listener) (*Result, error) {
	r.cancelled.Store(false)
	if l == nil {
		l = NopListener{}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	// Template syntax errors fail identically for every recipient, so
	// surface them before the first send.
	if _, err := r.engine.Render(c.Subject, nil); err != nil {
		return nil, fmt.Errorf("subject template: %w", err)
	}
	if _, err := r.engine.Render(c.Body, nil); err != nil {
		return nil, fmt.Errorf("body template: %w", err)
	}
	parts, err := attachment.BuildAll(c.AttachmentPaths, r.maxSize)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithRunID(ctx, uuid.NewString())
	total := len(c.Recipients)
	result := &Result{Total: total}

	r.log.InfoContext(ctx, "campaign started",
		slog.Int("recipients", total),
		slog.Int("attachments", len(parts)),
		slog.String("provider", r.sender.Name()),
	)
	started := time.Now()

	for i, rec := range c.Recipients {
		if r.cancelled.Load() || ctx.Err() != nil {
			result.Cancelled = true
			r.log.InfoContext(ctx, "campaign cancelled", slog.Int("processed", i))
			break
		}

		out := r.sendOne(ctx, c, i, rec, parts)
		result.record(out)
		if !out.Sent {
			r.log.WarnContext(ctx, "delivery failed",
				slog.String("recipient", out.Recipient),
				slog.String("error", out.Error),
			)
		}
		l.Recipient(out.Recipient, out.Sent, out.Error)
		l.Progress(i+1, total)
	}

	result.finalize()
	r.log.InfoContext(ctx, "campaign finished",
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
		slog.Bool("cancelled", result.Cancelled),
		slog.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (r *Runner) sendOne(ctx context.Context, c *Campaign, row int, rec recipients.Record, parts []*attachment.Part) Outcome {
	out := Outcome{At: time.Now()}

	addr := rec.Get(c.emailColumn())
	if addr == "" {
		out.Recipient = fmt.Sprintf("row %d", row+1)
		out.Error = "missing email address"
		return out
	}
	out.Recipient = addr

	data := rec.Fields()
	subject, err := r.engine.Render(c.Subject, data)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	body, err := r.engine.Render(c.Body, data)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	var htmlBody string
	if c.HTMLBody {
		htmlBody, err = render.ToHTML(body)
		if err != nil {
			out.Error = err.Error()
			return out
		}
	}

	email, err := mailer.Compose(mailer.ComposeParams{
		Sender:      c.Sender,
		SenderName:  c.SenderName,
		ReplyTo:     c.ReplyTo,
		Recipients:  []string{addr},
		Subject:     subject,
		Body:        body,
		HTMLBody:    htmlBody,
		Attachments: parts,
	})
	if err != nil {
		out.Error = err.Error()
		return out
	}

	if err := r.sender.Send(ctx, email); err != nil {
		out.Error = err.Error()
		return out
	}

	out.Sent = true
	out.At = time.Now()
	return out
}
