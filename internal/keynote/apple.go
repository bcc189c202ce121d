package keynote

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/twardoch/keynote-freezer/internal/osascript"
)

// appleApp drives the real Keynote application through osascript. Every
// method issues exactly one blocking scripting call; callers are expected to
// keep calls strictly sequential.
type appleApp struct {
	run *osascript.Runner
}

// NewApp returns an App bound to the local Keynote instance.
func NewApp(run *osascript.Runner) App {
	return &appleApp{run: run}
}

func (a *appleApp) Activate(ctx context.Context) error {
	_, err := a.run.Run(ctx, "activate", `tell application "Keynote" to activate`)
	return err
}

func (a *appleApp) Open(ctx context.Context, path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	script := fmt.Sprintf(`tell application "Keynote"
	set theDoc to open (POSIX file %s)
	return id of theDoc
end tell`, osascript.Quote(abs))
	id, err := a.run.RunLong(ctx, "open document", script)
	if err != nil {
		return nil, err
	}
	return &appleDocument{run: a.run, id: id, path: abs}, nil
}

type appleDocument struct {
	run  *osascript.Runner
	id   string
	path string
}

func (d *appleDocument) ref() string {
	return fmt.Sprintf("document id %s", osascript.Quote(d.id))
}

func (d *appleDocument) Path() string {
	return d.path
}

func (d *appleDocument) SlideCount(ctx context.Context) (int, error) {
	script := fmt.Sprintf(`tell application "Keynote" to count slides of %s`, d.ref())
	out, err := d.run.Run(ctx, "count slides", script)
	if err != nil {
		return 0, err
	}
	return parseCount(out)
}

func (d *appleDocument) Slide(ordinal int) Slide {
	return &appleSlide{doc: d, ordinal: ordinal}
}

func (d *appleDocument) ExportPDF(ctx context.Context, pdfPath string) error {
	script := fmt.Sprintf(`tell application "Keynote"
	export %s to (POSIX file %s) as PDF with properties {PDF image quality:Best, skipped slides:false}
end tell`, d.ref(), osascript.Quote(pdfPath))
	_, err := d.run.RunLong(ctx, "export pdf", script)
	return err
}

func (d *appleDocument) Close(ctx context.Context) error {
	script := fmt.Sprintf(`tell application "Keynote" to close %s saving yes`, d.ref())
	_, err := d.run.Run(ctx, "close document", script)
	return err
}

type appleSlide struct {
	doc     *appleDocument
	ordinal int
}

func (s *appleSlide) ref() string {
	return fmt.Sprintf("slide %d of %s", s.ordinal, s.doc.ref())
}

func (s *appleSlide) Ordinal() int {
	return s.ordinal
}

// TextItems reads every text item and shape of the slide in one scripting
// round trip. The script emits one tab-separated line per item; the font
// field comes last because it may be empty.
func (s *appleSlide) TextItems(ctx context.Context) ([]Item, error) {
	script := fmt.Sprintf(`tell application "Keynote"
	tell %s
		set out to {}
		set titleItem to missing value
		set bodyItem to missing value
		try
			set titleItem to default title item
		end try
		try
			set bodyItem to default body item
		end try
		repeat with i from 1 to count of text items
			set ti to text item i
			set f to ""
			try
				set f to font of object text of ti
			end try
			set ph to "none"
			if titleItem is not missing value and ti is titleItem then set ph to "title"
			if bodyItem is not missing value and ti is bodyItem then set ph to "body"
			set end of out to ("text item" & tab & i & tab & (locked of ti) & tab & ph & tab & f)
		end repeat
		repeat with i from 1 to count of shapes
			set sh to shape i
			set f to ""
			try
				set f to font of object text of sh
			end try
			set end of out to ("shape" & tab & i & tab & (locked of sh) & tab & "none" & tab & f)
		end repeat
		set AppleScript's text item delimiters to linefeed
		return out as text
	end tell
end tell`, s.ref())
	out, err := s.doc.run.Run(ctx, "list slide items", script)
	if err != nil {
		return nil, err
	}
	infos, err := parseItemLines(out)
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", s.ordinal, err)
	}
	items := make([]Item, len(infos))
	for i, info := range infos {
		items[i] = &appleItem{slide: s, info: info}
	}
	return items, nil
}

func (s *appleSlide) MakeCurrent(ctx context.Context) error {
	script := fmt.Sprintf(`tell application "Keynote" to set current slide of %s to %s`,
		s.doc.ref(), s.ref())
	_, err := s.doc.run.Run(ctx, "set current slide", script)
	return err
}

func (s *appleSlide) SetTitleShowing(ctx context.Context, showing bool) error {
	script := fmt.Sprintf(`tell application "Keynote" to set title showing of %s to %t`,
		s.ref(), showing)
	_, err := s.doc.run.Run(ctx, "set title showing", script)
	return err
}

func (s *appleSlide) SetBodyShowing(ctx context.Context, showing bool) error {
	script := fmt.Sprintf(`tell application "Keynote" to set body showing of %s to %t`,
		s.ref(), showing)
	_, err := s.doc.run.Run(ctx, "set body showing", script)
	return err
}

func (s *appleSlide) DeleteAll(ctx context.Context, class ItemClass) error {
	script := fmt.Sprintf(`tell application "Keynote" to delete every %s of %s`, class, s.ref())
	_, err := s.doc.run.Run(ctx, fmt.Sprintf("delete every %s", class), script)
	return err
}

// Paste sends command-V through System Events. The pasteboard must already
// hold the page PDF and the slide must be current.
func (s *appleSlide) Paste(ctx context.Context) error {
	script := `tell application "Keynote" to activate
tell application "System Events" to keystroke "v" using command down`
	_, err := s.doc.run.RunLong(ctx, "paste", script)
	return err
}

// SendFirstImageToBack selects the freshly pasted image and sends it behind
// the remaining text with shift-command-B. A slide without images is left
// alone; Keynote pastes blank PDF pages as images too, so this only happens
// when the paste itself produced nothing selectable.
func (s *appleSlide) SendFirstImageToBack(ctx context.Context) error {
	script := fmt.Sprintf(`tell application "Keynote"
	if (count of images of %[1]s) is 0 then return "none"
	activate
	set selection of %[2]s to {image 1 of %[1]s}
end tell
tell application "System Events" to keystroke "b" using {command down, shift down}
return "sent"`, s.ref(), s.doc.ref())
	_, err := s.doc.run.Run(ctx, "send image to back", script)
	return err
}

type appleItem struct {
	slide *appleSlide
	info  itemInfo
}

func (it *appleItem) Class() ItemClass {
	return it.info.class
}

func (it *appleItem) Font() string {
	return it.info.font
}

func (it *appleItem) Locked() bool {
	return it.info.locked
}

func (it *appleItem) Placeholder() Placeholder {
	return it.info.placeholder
}

func (it *appleItem) Delete(ctx context.Context) error {
	script := fmt.Sprintf(`tell application "Keynote" to delete %s %d of %s`,
		it.info.class, it.info.index, it.slide.ref())
	_, err := it.slide.doc.run.Run(ctx, fmt.Sprintf("delete %s", it.info.class), script)
	return err
}
