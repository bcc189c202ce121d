package freezer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/twardoch/keynote-freezer/internal/fontset"
	"github.com/twardoch/keynote-freezer/internal/osascript"
)

// Options configures a freezing run.
type Options struct {
	// DocPath is the input deck.
	DocPath string
	// FontsAsText is the comma-separated list of safe font-family
	// prefixes.
	FontsAsText string
	// OutPath is the output deck; empty means "<stem>-frozen<ext>" next
	// to the input.
	OutPath string
	// ScriptTimeout bounds each short scripting call.
	ScriptTimeout time.Duration
	// ExportTimeout bounds open, export and paste calls.
	ExportTimeout time.Duration
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{
		FontsAsText:   "Roboto",
		ScriptTimeout: osascript.DefaultShortTimeout,
		ExportTimeout: osascript.DefaultLongTimeout,
	}
}

// validate checks the options and returns the parsed font set and the
// resolved input path. All failures here are configuration errors raised
// before any document is touched.
func (o *Options) validate() (fontset.Set, string, error) {
	fonts, err := fontset.Parse(o.FontsAsText)
	if err != nil {
		return fontset.Set{}, "", NewConfigurationError("invalid safe font set", err)
	}
	if o.DocPath == "" {
		return fontset.Set{}, "", NewConfigurationError("no input document given", nil)
	}
	docPath, err := filepath.Abs(o.DocPath)
	if err != nil {
		return fontset.Set{}, "", NewConfigurationError("cannot resolve input path", err)
	}
	info, err := os.Stat(docPath)
	if err != nil {
		return fontset.Set{}, "", NewConfigurationError(
			fmt.Sprintf("input document %s not readable", docPath), err)
	}
	if info.IsDir() {
		return fontset.Set{}, "", NewConfigurationError(
			fmt.Sprintf("input document %s is a directory", docPath), nil)
	}
	outDir := filepath.Dir(ResolveOutPath(docPath, o.OutPath))
	if info, err := os.Stat(outDir); err != nil || !info.IsDir() {
		return fontset.Set{}, "", NewConfigurationError(
			fmt.Sprintf("output folder %s is not writable", outDir), err)
	}
	return fonts, docPath, nil
}

// ResolveOutPath returns outPath unchanged when given, otherwise the input
// path with "-frozen" inserted before the extension.
func ResolveOutPath(docPath, outPath string) string {
	if outPath != "" {
		return outPath
	}
	ext := filepath.Ext(docPath)
	stem := strings.TrimSuffix(filepath.Base(docPath), ext)
	return filepath.Join(filepath.Dir(docPath), stem+"-frozen"+ext)
}
