// Package pdf assembles rendered label images into a single document.
package pdf

import (
	"fmt"
	"os"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// gofpdf appends a blank page when a document is closed without any,
// so the zero-entry case writes this minimal zero-page document instead.
const emptyDocument = `%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [] /Count 0 >>
endobj
xref
0 3
0000000000 65535 f 
0000000009 00000 n 
0000000058 00000 n 
trailer
<< /Size 3 /Root 1 0 R >>
startxref
110
%%EOF
`

// Compose writes a PDF to path with one page per registry entry. Pages
// are emitted in ascending ISBN order regardless of map iteration order,
// each sized width x height inches with the image drawn full bleed. An
// empty registry yields a valid zero-page document.
func Compose(images map[string]string, path string, width, height float64) error {
	if len(images) == 0 {
		if err := os.WriteFile(path, []byte(emptyDocument), 0644); err != nil {
			return fmt.Errorf("failed to write PDF %s: %w", path, err)
		}
		return nil
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "in",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for _, isbn := range sortedISBNs(images) {
		doc.AddPage()
		doc.ImageOptions(images[isbn], 0, 0, width, height, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	// OutputFileAndClose finalizes the document on every path; a failed
	// page load surfaces here rather than leaving a dangling writer.
	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}

	return nil
}

func sortedISBNs(images map[string]string) []string {
	isbns := make([]string, 0, len(images))
	for isbn := range images {
		isbns = append(isbns, isbn)
	}
	sort.Strings(isbns)
	return isbns
}
