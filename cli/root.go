// Package cli wires the keynote-freezer command line.
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/twardoch/keynote-freezer/internal/freezer"
	"github.com/twardoch/keynote-freezer/internal/keynote"
	"github.com/twardoch/keynote-freezer/internal/osascript"
	"github.com/twardoch/keynote-freezer/internal/pasteboard"
	"github.com/twardoch/keynote-freezer/pkg/logger"
	"github.com/twardoch/keynote-freezer/pkg/version"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keynote-freezer DOC_PATH",
		Short: "Freeze a Keynote deck: keep safe-font text editable, rasterize the rest to PDF",
		Long: `keynote-freezer processes a Keynote deck so it survives conversion to other
presentation formats: text set in the approved fonts stays editable, and every
other visual element is rasterized to a PDF page pasted behind it.`,
		Args:         cobra.ExactArgs(1),
		Version:      version.GetVersion(),
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringP("fonts-as-text", "f", "Roboto",
		"Comma-separated font-family prefixes kept as editable text")
	root.Flags().StringP("out-path", "o", "",
		"Output path (default: input with -frozen before the extension)")
	root.Flags().Duration("script-timeout", osascript.DefaultShortTimeout,
		"Timeout for each short scripting call")
	root.Flags().Duration("export-timeout", osascript.DefaultLongTimeout,
		"Timeout for open, export and paste calls")
	root.Flags().Bool("copy-path", false,
		"Copy the output path to the clipboard on success")

	root.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.Flags().Bool("log-json", false, "Output logs in JSON format")
	root.Flags().Bool("debug", false, "Enable debug mode (sets log level to debug)")

	root.PreRunE = func(cmd *cobra.Command, _ []string) error {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			return cmd.Flags().Set("log-level", "debug")
		}
		return nil
	}

	return root
}

func run(cmd *cobra.Command, args []string) error {
	fontsAsText, _ := cmd.Flags().GetString("fonts-as-text")
	outPath, _ := cmd.Flags().GetString("out-path")
	scriptTimeout, _ := cmd.Flags().GetDuration("script-timeout")
	exportTimeout, _ := cmd.Flags().GetDuration("export-timeout")
	copyPath, _ := cmd.Flags().GetBool("copy-path")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	setupLogger(logLevel, logJSON)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := freezer.DefaultOptions()
	opts.DocPath = args[0]
	opts.FontsAsText = fontsAsText
	opts.OutPath = outPath
	opts.ScriptTimeout = scriptTimeout
	opts.ExportTimeout = exportTimeout

	out, err := freeze(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	if copyPath {
		if err := clipboard.WriteAll(out); err != nil {
			logger.Warn("could not copy output path to clipboard", "error", err)
		}
	}
	return nil
}

func freeze(ctx context.Context, opts freezer.Options) (string, error) {
	runner := osascript.NewRunner(opts.ScriptTimeout, opts.ExportTimeout)
	app := keynote.NewApp(runner)
	slot := pasteboard.NewSlot(pasteboard.NewBoard(runner))
	proc, err := freezer.New(app, slot, opts)
	if err != nil {
		return "", err
	}
	return proc.Process(ctx)
}

func setupLogger(logLevel string, logJSON bool) {
	logger.Init(&logger.Config{
		Level:      logger.LogLevel(logLevel),
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})
}
