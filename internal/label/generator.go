// Package label renders EAN-13 barcode images for ISBNs.
package label

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
	"github.com/lehigh-university-libraries/isbnlabel/internal/metadata"
)

// Raster dimensions for the generated PNGs. The EAN-13 symbology needs
// 95 modules of width, so 600x300 leaves comfortable room and matches
// the 2:1 aspect of the default label size.
const (
	imageWidth  = 600
	imageHeight = 300
)

// Generator writes one barcode PNG per ISBN into OutDir and records the
// resulting paths.
type Generator struct {
	OutDir    string
	Verbose   bool
	KeepGoing bool
	Logger    *slog.Logger
	Resolver  *metadata.Resolver
	Out       io.Writer
}

// Generate renders a barcode image for every ISBN and returns the
// registry of ISBN to image path. In verbose mode it also resolves
// bibliographic metadata per ISBN and returns the records that were
// found. A render or write failure aborts the run unless KeepGoing is
// set, in which case the offending ISBN is logged and skipped.
func (g *Generator) Generate(ctx context.Context, isbns []string) (map[string]string, map[string]metadata.Record, error) {
	if err := os.MkdirAll(g.OutDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	images := make(map[string]string, len(isbns))
	var resolved map[string]metadata.Record
	if g.Verbose {
		resolved = make(map[string]metadata.Record, len(isbns))
	}

	for _, isbn := range isbns {
		filename := filepath.Join(g.OutDir, isbn+".png")

		if g.Verbose {
			record, source := g.Resolver.Resolve(ctx, isbn)
			if source == "" {
				source = "no source"
			}
			fmt.Fprintf(g.Out, "Generate ISBN barcode at %s for %s (source %s)\n", filename, record, source)
			if !record.IsEmpty() {
				resolved[isbn] = record
			}
		} else {
			fmt.Fprintf(g.Out, "Generate ISBN barcode at %s for ISBN: %s\n", filename, isbn)
		}

		if err := renderPNG(isbn, filename); err != nil {
			if g.KeepGoing {
				g.Logger.Error("Skipping ISBN after render failure", "isbn", isbn, "err", err)
				continue
			}
			return nil, nil, err
		}

		images[isbn] = filename
	}

	return images, resolved, nil
}

// renderPNG encodes isbn as an EAN-13 barcode and writes it to path,
// overwriting any existing file.
func renderPNG(isbn, path string) error {
	code, err := ean.Encode(isbn)
	if err != nil {
		return fmt.Errorf("failed to encode barcode for %s: %w", isbn, err)
	}

	scaled, err := barcode.Scale(code, imageWidth, imageHeight)
	if err != nil {
		return fmt.Errorf("failed to scale barcode for %s: %w", isbn, err)
	}

	// The scaled barcode carries a 16-bit color model, which would make
	// png.Encode emit a 16-bit-depth file that gofpdf cannot embed.
	// Redraw into an 8-bit grayscale buffer first.
	img := image.NewGray(scaled.Bounds())
	draw.Draw(img, img.Bounds(), scaled, scaled.Bounds().Min, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
