package freezer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/twardoch/keynote-freezer/internal/keynote"
)

// The fakes below model just enough Keynote behavior for the workflow:
// slides hold items in back-to-front stacking order, pasting appends a new
// image at the top carrying whatever the fake pasteboard holds, and sending
// to back moves the first image to the bottom.

type fakeEnv struct {
	clipboard string
	pasteErr  error
}

type specItem struct {
	class       keynote.ItemClass
	font        string
	locked      bool
	placeholder keynote.Placeholder
}

type fakeApp struct {
	env       *fakeEnv
	template  [][]specItem
	docs      []*fakeDoc
	activated bool
	failOpen  string // substring of path that makes Open fail
}

func newFakeApp(template [][]specItem) *fakeApp {
	return &fakeApp{env: &fakeEnv{}, template: template}
}

func (a *fakeApp) Activate(context.Context) error {
	a.activated = true
	return nil
}

func (a *fakeApp) Open(_ context.Context, path string) (keynote.Document, error) {
	if a.failOpen != "" && strings.Contains(filepath.Base(path), a.failOpen) {
		return nil, fmt.Errorf("Keynote got an error: can't open %s", path)
	}
	doc := &fakeDoc{app: a, path: path}
	for i, slideSpec := range a.template {
		slide := &fakeSlide{doc: doc, ordinal: i + 1, titleShowing: true, bodyShowing: true}
		for _, it := range slideSpec {
			slide.items = append(slide.items, &fakeItem{
				slide:       slide,
				class:       it.class,
				font:        it.font,
				locked:      it.locked,
				placeholder: it.placeholder,
			})
		}
		doc.slides = append(doc.slides, slide)
	}
	a.docs = append(a.docs, doc)
	return doc, nil
}

type fakeDoc struct {
	app        *fakeApp
	path       string
	slides     []*fakeSlide
	current    int
	closed     bool
	exportedTo string
}

func (d *fakeDoc) Path() string { return d.path }

func (d *fakeDoc) SlideCount(context.Context) (int, error) {
	return len(d.slides), nil
}

func (d *fakeDoc) Slide(ordinal int) keynote.Slide {
	return d.slides[ordinal-1]
}

func (d *fakeDoc) ExportPDF(_ context.Context, pdfPath string) error {
	d.exportedTo = pdfPath
	return os.WriteFile(pdfPath, []byte("%PDF-fake"), 0o644)
}

func (d *fakeDoc) Close(context.Context) error {
	d.closed = true
	return nil
}

type fakeSlide struct {
	doc          *fakeDoc // nil in filter-only tests
	ordinal      int
	items        []*fakeItem // back-to-front
	titleShowing bool
	bodyShowing  bool
	deletions    int
}

func (s *fakeSlide) Ordinal() int { return s.ordinal }

func (s *fakeSlide) TextItems(context.Context) ([]keynote.Item, error) {
	var out []keynote.Item
	for _, it := range s.items {
		if it.class == keynote.ClassText || it.class == keynote.ClassShape {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeSlide) MakeCurrent(context.Context) error {
	if s.doc != nil {
		s.doc.current = s.ordinal
	}
	return nil
}

func (s *fakeSlide) SetTitleShowing(_ context.Context, showing bool) error {
	s.titleShowing = showing
	return nil
}

func (s *fakeSlide) SetBodyShowing(_ context.Context, showing bool) error {
	s.bodyShowing = showing
	return nil
}

func (s *fakeSlide) DeleteAll(_ context.Context, class keynote.ItemClass) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.class == class {
			s.deletions++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return nil
}

func (s *fakeSlide) Paste(context.Context) error {
	if s.doc != nil && s.doc.app.env.pasteErr != nil {
		return s.doc.app.env.pasteErr
	}
	pasted := &fakeItem{slide: s, class: keynote.ClassImage}
	if s.doc != nil {
		pasted.pastedFrom = s.doc.app.env.clipboard
	}
	s.items = append(s.items, pasted)
	return nil
}

func (s *fakeSlide) SendFirstImageToBack(context.Context) error {
	for i, it := range s.items {
		if it.class == keynote.ClassImage {
			copy(s.items[1:i+1], s.items[:i])
			s.items[0] = it
			return nil
		}
	}
	return nil
}

// wireItems points every item back at the slide so Delete can remove it.
func (s *fakeSlide) wireItems() *fakeSlide {
	for _, it := range s.items {
		it.slide = s
	}
	return s
}

func (s *fakeSlide) remove(target *fakeItem) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it == target {
			s.deletions++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
}

type fakeItem struct {
	slide       *fakeSlide
	class       keynote.ItemClass
	font        string
	locked      bool
	placeholder keynote.Placeholder
	pastedFrom  string
}

func (it *fakeItem) Class() keynote.ItemClass         { return it.class }
func (it *fakeItem) Font() string                     { return it.font }
func (it *fakeItem) Locked() bool                     { return it.locked }
func (it *fakeItem) Placeholder() keynote.Placeholder { return it.placeholder }

func (it *fakeItem) Delete(context.Context) error {
	it.slide.remove(it)
	return nil
}

type fakeBoard struct {
	env   *fakeEnv
	loads []string
}

func (b *fakeBoard) SetPDF(_ context.Context, pdfPath string) error {
	b.env.clipboard = pdfPath
	b.loads = append(b.loads, pdfPath)
	return nil
}

// fakeSplitter pretends the exported PDF has a fixed number of pages.
type fakeSplitter struct {
	pages int
}

func (s fakeSplitter) PageCount(string) (int, error) {
	return s.pages, nil
}

func (s fakeSplitter) SplitIntoPages(_, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, s.pages)
	for i := 1; i <= s.pages; i++ {
		p := filepath.Join(outDir, fmt.Sprintf("%04d.pdf", i))
		if err := os.WriteFile(p, []byte("%PDF-page"), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
