// Package pdfsplit splits an exported deck PDF into one file per page.
package pdfsplit

import (
	"fmt"
	"os"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := pdfapi.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("count pages of %s: %w", path, err)
	}
	return n, nil
}

// SplitIntoPages writes every page of pdfPath as its own single-page PDF
// into outDir, named 0001.pdf, 0002.pdf and so on, and returns the paths in
// page order.
func SplitIntoPages(pdfPath, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create pages folder: %w", err)
	}
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open exported pdf: %w", err)
	}
	defer f.Close()
	ctx, err := pdfapi.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read exported pdf %s: %w", pdfPath, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("read exported pdf %s: %w", pdfPath, err)
	}
	paths := make([]string, 0, ctx.PageCount)
	for page := 1; page <= ctx.PageCount; page++ {
		pagePath := filepath.Join(outDir, fmt.Sprintf("%04d.pdf", page))
		if err := writePage(ctx, page, pagePath); err != nil {
			return nil, err
		}
		paths = append(paths, pagePath)
	}
	return paths, nil
}

func writePage(ctx *model.Context, page int, pagePath string) error {
	pageCtx, err := pdfcpu.ExtractPages(ctx, []int{page}, false)
	if err != nil {
		return fmt.Errorf("extract page %d: %w", page, err)
	}
	out, err := os.Create(pagePath)
	if err != nil {
		return fmt.Errorf("create page file %s: %w", pagePath, err)
	}
	defer out.Close()
	if err := pdfapi.WriteContext(pageCtx, out); err != nil {
		return fmt.Errorf("write page %d: %w", page, err)
	}
	return nil
}
