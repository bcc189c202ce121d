// Package pasteboard models the system clipboard as an explicit single-slot
// resource. There is exactly one pasteboard per login session; every
// load-then-paste cycle must hold the slot so a concurrent cycle can never
// paste the wrong page.
package pasteboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/twardoch/keynote-freezer/internal/osascript"
)

// Board loads content into the pasteboard.
type Board interface {
	// SetPDF replaces the pasteboard content with the PDF file's data.
	SetPDF(ctx context.Context, pdfPath string) error
}

// Slot serializes pasteboard cycles. The freezer runs single-threaded, but
// the acquire/release pair makes the shared-resource contract explicit
// instead of leaving the clipboard an ambient global.
type Slot struct {
	mu    sync.Mutex
	board Board
}

func NewSlot(board Board) *Slot {
	return &Slot{board: board}
}

// WithPDF loads the PDF into the pasteboard and runs fn while the slot is
// held. The content is only meaningful until the next load, so fn must
// finish its paste before returning.
func (s *Slot) WithPDF(ctx context.Context, pdfPath string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.SetPDF(ctx, pdfPath); err != nil {
		return fmt.Errorf("load pasteboard: %w", err)
	}
	return fn(ctx)
}

// osascriptBoard fills the general pasteboard through AppleScript, reading
// the file as PDF data so Keynote pastes it as a single image.
type osascriptBoard struct {
	run *osascript.Runner
}

// NewBoard returns a Board backed by the macOS general pasteboard.
func NewBoard(run *osascript.Runner) Board {
	return &osascriptBoard{run: run}
}

func (b *osascriptBoard) SetPDF(ctx context.Context, pdfPath string) error {
	script := fmt.Sprintf(
		"set the clipboard to (read (POSIX file %s) as «class PDF »)",
		osascript.Quote(pdfPath))
	_, err := b.run.Run(ctx, "set clipboard", script)
	return err
}
