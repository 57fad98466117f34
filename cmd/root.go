package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/isbnlabel/internal/input"
	"github.com/lehigh-university-libraries/isbnlabel/internal/isbn"
	"github.com/lehigh-university-libraries/isbnlabel/internal/label"
	"github.com/lehigh-university-libraries/isbnlabel/internal/metadata"
	"github.com/lehigh-university-libraries/isbnlabel/internal/pdf"
	"github.com/spf13/cobra"
)

type options struct {
	verbose     bool
	file        string
	outDir      string
	outFile     string
	labelWidth  float64
	labelHeight float64
	keepGoing   bool
	metadataOut string
}

func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "isbnlabel [isbns...]",
		Short: "Create ISBN-13 barcode labels for a list of ISBNs",
		Long: `isbnlabel turns a list of ISBNs into printable EAN-13 barcode labels
collected in a single PDF.

ISBNs can be given as arguments, read from a file (one per line), or both.
Ten-digit ISBNs are converted to their 13-digit form; invalid values are
logged and skipped. One PNG is written per ISBN alongside the final PDF,
with one label per page at the configured size.`,
		Example: `  # Two labels with default 3.0" x 1.5" pages
  isbnlabel 9780306406157 0-8044-2957-X

  # Read ISBNs from a file, look up metadata, write to ./labels
  isbnlabel --verbose --file isbns.txt --outdir labels

  # Smaller labels under a custom filename
  isbnlabel -W 2 -H 1 -o spine-labels.pdf 9780306406157`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over the environment; the env vars only fill in
			// values the user did not set.
			if !cmd.Flags().Changed("outdir") {
				if dir := os.Getenv("ISBNLABEL_OUTDIR"); dir != "" {
					opts.outDir = dir
				}
			}
			if !cmd.Flags().Changed("outfile") {
				if name := os.Getenv("ISBNLABEL_OUTFILE"); name != "" {
					opts.outFile = name
				}
			}

			return run(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable metadata lookup and verbose output")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "File containing ISBNs (one per line)")
	cmd.Flags().StringVarP(&opts.outDir, "outdir", "O", ".", "Output directory")
	cmd.Flags().StringVarP(&opts.outFile, "outfile", "o", "labels.pdf", "Output PDF file")
	cmd.Flags().Float64VarP(&opts.labelWidth, "label-width", "W", 3.0, "Label width in inches")
	cmd.Flags().Float64VarP(&opts.labelHeight, "label-height", "H", 1.5, "Label height in inches")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "Skip ISBNs whose barcode fails to render instead of aborting")
	cmd.Flags().StringVar(&opts.metadataOut, "metadata-out", "", "Write resolved metadata as YAML to this file in the output directory (needs --verbose)")

	return cmd
}

// run executes the pipeline: collect, normalize, generate, compose.
func run(ctx context.Context, stdout io.Writer, args []string, opts options) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	raw, err := input.Collect(args, opts.file)
	if err != nil {
		return err
	}

	isbns := isbn.Normalize(logger, raw)

	generator := &label.Generator{
		OutDir:    opts.outDir,
		Verbose:   opts.verbose,
		KeepGoing: opts.keepGoing,
		Logger:    logger,
		Resolver:  metadata.NewResolver(logger),
		Out:       stdout,
	}
	images, resolved, err := generator.Generate(ctx, isbns)
	if err != nil {
		return err
	}

	if opts.metadataOut != "" && opts.verbose {
		sidecar := filepath.Join(opts.outDir, opts.metadataOut)
		if err := metadata.WriteSidecar(sidecar, resolved); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote metadata to: %s\n", sidecar)
	}

	pdfPath := filepath.Join(opts.outDir, opts.outFile)
	fmt.Fprintf(stdout, "Generating PDF at: %s\n", pdfPath)
	fmt.Fprintf(stdout, "Using labels of size %.2f\" x %.2f\"\n", opts.labelWidth, opts.labelHeight)

	return pdf.Compose(images, pdfPath, opts.labelWidth, opts.labelHeight)
}
