// Package keynote abstracts the scripting surface of Apple Keynote behind
// narrow, typed handles. The freezer core only sees these interfaces; the
// AppleScript binding lives in the adapter underneath.
package keynote

import "context"

// ItemClass is the scripting class of a slide item.
type ItemClass string

const (
	ClassText  ItemClass = "text item"
	ClassShape ItemClass = "shape"
	ClassImage ItemClass = "image"
	ClassChart ItemClass = "chart"
	ClassTable ItemClass = "table"
	ClassGroup ItemClass = "group"
	ClassLine  ItemClass = "line"
)

// BulkClasses are the classes removed wholesale from the text variant; they
// never carry text the freezer could keep.
var BulkClasses = []ItemClass{ClassChart, ClassImage, ClassGroup, ClassLine, ClassTable}

// Placeholder marks the slide's default title or body item. Placeholders are
// hidden through slide properties instead of being deleted.
type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	PlaceholderTitle
	PlaceholderBody
)

// App is the controlling presentation application.
type App interface {
	// Activate brings the application to the foreground. Pasting through
	// System Events requires it to have key focus.
	Activate(ctx context.Context) error
	// Open opens a document and returns a handle to it.
	Open(ctx context.Context, path string) (Document, error)
}

// Document is one open document.
type Document interface {
	// Path is the backing file path of the document.
	Path() string
	// SlideCount returns the number of slides.
	SlideCount(ctx context.Context) (int, error)
	// Slide returns a handle to the slide with the given 1-based ordinal.
	Slide(ordinal int) Slide
	// ExportPDF exports the whole document to a PDF at the given path, at
	// the highest image quality and including skipped slides.
	ExportPDF(ctx context.Context, pdfPath string) error
	// Close closes the document, saving changes.
	Close(ctx context.Context) error
}

// Slide is one slide of an open document.
type Slide interface {
	// Ordinal is the 1-based slide number; it is stable across variants.
	Ordinal() int
	// TextItems lists the slide's text-bearing items (text items and
	// shapes) with their font, lock state and placeholder role.
	TextItems(ctx context.Context) ([]Item, error)
	// MakeCurrent navigates the document to this slide.
	MakeCurrent(ctx context.Context) error
	// SetTitleShowing toggles the default title placeholder.
	SetTitleShowing(ctx context.Context, showing bool) error
	// SetBodyShowing toggles the default body placeholder.
	SetBodyShowing(ctx context.Context, showing bool) error
	// DeleteAll removes every item of the given class from the slide.
	DeleteAll(ctx context.Context, class ItemClass) error
	// Paste pastes the current pasteboard content onto the slide.
	Paste(ctx context.Context) error
	// SendFirstImageToBack selects the slide's first image and moves it to
	// the bottom of the stacking order.
	SendFirstImageToBack(ctx context.Context) error
}

// Item is one text-bearing item on a slide.
type Item interface {
	Class() ItemClass
	// Font is the PostScript font name of the item's object text, or ""
	// when the item has no text.
	Font() string
	Locked() bool
	Placeholder() Placeholder
	// Delete removes the item from its slide. Irreversible.
	Delete(ctx context.Context) error
}
