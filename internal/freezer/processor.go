package freezer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/twardoch/keynote-freezer/internal/fontset"
	"github.com/twardoch/keynote-freezer/internal/keynote"
	"github.com/twardoch/keynote-freezer/internal/pasteboard"
	"github.com/twardoch/keynote-freezer/internal/pdfsplit"
	"github.com/twardoch/keynote-freezer/pkg/logger"
)

// Splitter is the PDF page-splitting dependency of the processor.
type Splitter interface {
	PageCount(path string) (int, error)
	SplitIntoPages(pdfPath, outDir string) ([]string, error)
}

type pdfcpuSplitter struct{}

func (pdfcpuSplitter) PageCount(path string) (int, error) {
	return pdfsplit.PageCount(path)
}

func (pdfcpuSplitter) SplitIntoPages(pdfPath, outDir string) ([]string, error) {
	return pdfsplit.SplitIntoPages(pdfPath, outDir)
}

// Processor runs the whole freezing workflow: build the vector and text
// variants, rasterize the vector variant to per-slide PDF pages, paste each
// page behind the surviving text, and leave the text variant at the output
// path. All scripting runs strictly sequentially; Keynote holds exactly one
// in-flight operation at a time.
type Processor struct {
	app   keynote.App
	slot  *pasteboard.Slot
	split Splitter
	opts  Options

	fonts   fontset.Set
	docPath string

	tempDir   string
	openDocs  []keynote.Document
	pagePaths []string
}

// New validates the options and returns a ready Processor.
func New(app keynote.App, slot *pasteboard.Slot, opts Options) (*Processor, error) {
	fonts, docPath, err := opts.validate()
	if err != nil {
		return nil, err
	}
	return &Processor{
		app:     app,
		slot:    slot,
		split:   pdfcpuSplitter{},
		opts:    opts,
		fonts:   fonts,
		docPath: docPath,
	}, nil
}

// WithSplitter swaps the PDF splitter.
func (p *Processor) WithSplitter(s Splitter) *Processor {
	p.split = s
	return p
}

// Process drives the run end to end and returns the output path. Temporary
// files and open documents are released on every exit path; cleanup failures
// are logged and never mask the original error.
func (p *Processor) Process(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)
	outPath := ResolveOutPath(p.docPath, p.opts.OutPath)
	tempDir, err := os.MkdirTemp("", "keynote-freezer-")
	if err != nil {
		return "", NewIOError("create temporary folder", err)
	}
	p.tempDir = tempDir
	defer p.cleanup(ctx)

	if err := p.app.Activate(ctx); err != nil {
		return "", NewAutomationError("activate application", err)
	}

	slideCount, err := p.processVector(ctx)
	if err != nil {
		return "", err
	}
	txtPath, err := p.processText(ctx, slideCount)
	if err != nil {
		return "", err
	}
	if err := p.closeDocs(ctx); err != nil {
		return "", err
	}
	if err := moveFile(txtPath, outPath); err != nil {
		return "", NewIOError(fmt.Sprintf("move output to %s", outPath), err)
	}
	log.Info("deck frozen", "output", outPath, "slides", slideCount)
	return outPath, nil
}

// processVector builds the vector variant: strip safe text, export to PDF,
// split into per-slide pages. Returns the slide count, which every later
// step must preserve.
func (p *Processor) processVector(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	vecPath, err := p.copyDoc("pdf")
	if err != nil {
		return 0, err
	}
	vecDoc, err := p.app.Open(ctx, vecPath)
	if err != nil {
		return 0, NewAutomationError("open vector variant", err)
	}
	p.openDocs = append(p.openDocs, vecDoc)
	slideCount, err := vecDoc.SlideCount(ctx)
	if err != nil {
		return 0, NewAutomationError("count slides", err)
	}
	log.Info("cleaning vector variant", "slides", slideCount)
	for ordinal := 1; ordinal <= slideCount; ordinal++ {
		slide := vecDoc.Slide(ordinal)
		if err := slide.MakeCurrent(ctx); err != nil {
			return 0, NewAutomationError("set current slide", err)
		}
		if err := cleanSlide(ctx, slide, p.fonts, false); err != nil {
			return 0, fmt.Errorf("vector slide %d: %w", ordinal, err)
		}
	}

	pdfPath := filepath.Join(p.tempDir, docStem(p.docPath)+".pdf")
	log.Info("exporting vector variant", "pdf", pdfPath)
	if err := vecDoc.ExportPDF(ctx, pdfPath); err != nil {
		return 0, NewAutomationError("export pdf", err)
	}
	pageCount, err := p.split.PageCount(pdfPath)
	if err != nil {
		return 0, NewIOError("read exported pdf", err)
	}
	if pageCount != slideCount {
		return 0, NewConsistencyError(fmt.Sprintf(
			"exported pdf has %d pages but the deck has %d slides", pageCount, slideCount))
	}
	pagesDir := filepath.Join(p.tempDir, docStem(p.docPath))
	p.pagePaths, err = p.split.SplitIntoPages(pdfPath, pagesDir)
	if err != nil {
		return 0, NewIOError("split exported pdf", err)
	}
	if len(p.pagePaths) != slideCount {
		return 0, NewConsistencyError(fmt.Sprintf(
			"split produced %d pages for %d slides", len(p.pagePaths), slideCount))
	}
	return slideCount, nil
}

// processText builds the text variant and composites one page file behind
// each slide, in ascending slide order.
func (p *Processor) processText(ctx context.Context, slideCount int) (string, error) {
	log := logger.FromContext(ctx)
	txtPath, err := p.copyDoc("text")
	if err != nil {
		return "", err
	}
	txtDoc, err := p.app.Open(ctx, txtPath)
	if err != nil {
		return "", NewAutomationError("open text variant", err)
	}
	p.openDocs = append(p.openDocs, txtDoc)
	txtSlides, err := txtDoc.SlideCount(ctx)
	if err != nil {
		return "", NewAutomationError("count slides", err)
	}
	if txtSlides != slideCount {
		return "", NewConsistencyError(fmt.Sprintf(
			"text variant has %d slides but vector variant had %d", txtSlides, slideCount))
	}
	log.Info("cleaning text variant and compositing pages", "slides", slideCount)
	for ordinal := 1; ordinal <= slideCount; ordinal++ {
		slide := txtDoc.Slide(ordinal)
		if err := slide.MakeCurrent(ctx); err != nil {
			return "", NewAutomationError("set current slide", err)
		}
		if err := cleanSlide(ctx, slide, p.fonts, true); err != nil {
			return "", fmt.Errorf("text slide %d: %w", ordinal, err)
		}
		if err := p.compositeSlide(ctx, slide); err != nil {
			return "", fmt.Errorf("text slide %d: %w", ordinal, err)
		}
	}
	return txtPath, nil
}

// compositeSlide pastes the slide's page file and sends it to the back of
// the stacking order. The pasteboard slot is held for the whole cycle.
func (p *Processor) compositeSlide(ctx context.Context, slide keynote.Slide) error {
	pagePath := p.pagePaths[slide.Ordinal()-1]
	return p.slot.WithPDF(ctx, pagePath, func(ctx context.Context) error {
		if err := slide.Paste(ctx); err != nil {
			return NewAutomationError("paste page", err)
		}
		if err := slide.SendFirstImageToBack(ctx); err != nil {
			return NewAutomationError("send page to back", err)
		}
		return nil
	})
}

// copyDoc duplicates the source deck into the temp folder with a variant
// suffix, e.g. Deck-pdf.key.
func (p *Processor) copyDoc(suffix string) (string, error) {
	ext := filepath.Ext(p.docPath)
	dest := filepath.Join(p.tempDir, fmt.Sprintf("%s-%s%s", docStem(p.docPath), suffix, ext))
	if err := copyFile(p.docPath, dest); err != nil {
		return "", NewIOError(fmt.Sprintf("copy deck to %s", dest), err)
	}
	return dest, nil
}

func (p *Processor) closeDocs(ctx context.Context) error {
	for _, doc := range p.openDocs {
		if err := doc.Close(ctx); err != nil {
			return NewAutomationError("close document", err)
		}
	}
	p.openDocs = nil
	return nil
}

// cleanup releases everything the run acquired. It runs on every exit path;
// failures are logged and swallowed so they never mask the run's error.
func (p *Processor) cleanup(ctx context.Context) {
	log := logger.FromContext(ctx)
	for _, doc := range p.openDocs {
		if err := doc.Close(ctx); err != nil {
			log.Warn("cleanup: closing document failed", "path", doc.Path(), "error", err)
		}
	}
	p.openDocs = nil
	if p.tempDir != "" {
		if err := os.RemoveAll(p.tempDir); err != nil {
			log.Warn("cleanup: removing temporary folder failed", "path", p.tempDir, "error", err)
		}
		p.tempDir = ""
	}
}

func docStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// moveFile renames when possible and falls back to copy-and-delete across
// filesystems (the temp folder usually lives on another volume).
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}
