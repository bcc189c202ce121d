// Package osascript runs AppleScript snippets through the osascript binary
// with bounded timeouts. GUI automation calls can hang indefinitely, so every
// invocation carries its own deadline.
package osascript

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/twardoch/keynote-freezer/pkg/logger"
)

const (
	// DefaultShortTimeout bounds quick property reads and deletions.
	DefaultShortTimeout = 5 * time.Second
	// DefaultLongTimeout bounds open, export and paste operations.
	DefaultLongTimeout = 12 * time.Second

	maxOutput = 1 << 20
)

// Error reports a failed scripting call, naming the logical operation that
// triggered it.
type Error struct {
	Op     string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("osascript %s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("osascript %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes scripts sequentially. The controlling application is a
// single shared stateful resource, so callers must never issue overlapping
// calls; Runner does nothing to serialize them itself.
type Runner struct {
	ShortTimeout time.Duration
	LongTimeout  time.Duration
}

func NewRunner(short, long time.Duration) *Runner {
	if short <= 0 {
		short = DefaultShortTimeout
	}
	if long <= 0 {
		long = DefaultLongTimeout
	}
	return &Runner{ShortTimeout: short, LongTimeout: long}
}

// Run executes the script with the short timeout.
func (r *Runner) Run(ctx context.Context, op, script string) (string, error) {
	return r.run(ctx, op, script, r.ShortTimeout)
}

// RunLong executes the script with the long timeout.
func (r *Runner) RunLong(ctx context.Context, op, script string) (string, error) {
	return r.run(ctx, op, script, r.LongTimeout)
}

func (r *Runner) run(ctx context.Context, op, script string, timeout time.Duration) (string, error) {
	log := logger.FromContext(ctx)
	cmdCtx, cancel := commandContext(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(cmdCtx, "osascript", "-")
	cmd.Stdin = strings.NewReader(script)
	stdout := newLimitedBuffer(maxOutput)
	stderr := newLimitedBuffer(maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	start := time.Now()
	err := cmd.Run()
	log.Debug("osascript call finished",
		"op", op,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err != nil)
	if err != nil {
		if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		return "", &Error{Op: op, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func commandContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Quote renders a Go string as an AppleScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
