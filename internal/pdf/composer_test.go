package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid image usable as a label stand-in.
func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.Black)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func pageCount(t *testing.T, path string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(8, len(data))])
	}

	// Every page object carries /Type /Page; the page tree root adds one
	// /Type /Pages which matches the same prefix.
	return bytes.Count(data, []byte("/Type /Page")) - 1
}

func TestComposeOnePagePerEntry(t *testing.T) {
	dir := t.TempDir()
	images := map[string]string{}
	for _, isbn := range []string{"9780000000002", "9780000000019"} {
		path := filepath.Join(dir, isbn+".png")
		writeTestPNG(t, path)
		images[isbn] = path
	}

	out := filepath.Join(dir, "labels.pdf")
	if err := Compose(images, out, 3.0, 1.5); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := pageCount(t, out); got != 2 {
		t.Errorf("expected 2 pages, got %d", got)
	}
}

func TestComposeEmptyRegistry(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pdf")

	if err := Compose(map[string]string{}, out, 3.0, 1.5); err != nil {
		t.Fatalf("Compose failed on empty registry: %v", err)
	}

	if got := pageCount(t, out); got != 0 {
		t.Errorf("expected zero-page document, got %d pages", got)
	}
}

func TestComposeEmptyRegistryXrefRecords(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pdf")

	if err := Compose(map[string]string{}, out, 3.0, 1.5); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	start := bytes.Index(data, []byte("xref\n0 3\n"))
	if start == -1 {
		t.Fatalf("no xref table in empty document:\n%s", data)
	}

	// ISO 32000-1 requires cross-reference records to be exactly 20
	// bytes, padded with a space before the newline. Strict readers
	// reject shorter records.
	records := data[start+len("xref\n0 3\n"):]
	for i := 0; i < 3; i++ {
		record := records[i*20 : i*20+20]
		if record[18] != ' ' || record[19] != '\n' {
			t.Errorf("xref record %d is not 20 bytes: %q", i, record)
		}
	}
	if !bytes.HasPrefix(records[60:], []byte("trailer")) {
		t.Errorf("expected trailer after three 20-byte records, got %q", records[60:min(70, len(records))])
	}
}

func TestComposeCustomLabelSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "9780000000002.png")
	writeTestPNG(t, path)

	out := filepath.Join(dir, "labels.pdf")
	if err := Compose(map[string]string{"9780000000002": path}, out, 2.0, 1.0); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// gofpdf writes MediaBox dimensions in points (72/inch): 2.0"x1.0"
	// is 144x72.
	if !bytes.Contains(data, []byte("/MediaBox [0 0 144.00 72.00]")) {
		t.Error("expected 144x72pt media box for a 2x1 inch label")
	}
}

func TestComposeMissingImageFails(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pdf")

	err := Compose(map[string]string{"9780000000002": filepath.Join(dir, "missing.png")}, out, 3.0, 1.5)
	if err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestComposeOverwritesExistingPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "labels.pdf")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Compose(map[string]string{}, out, 3.0, 1.5); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected prior file to be replaced with a PDF")
	}
}

func TestSortedISBNs(t *testing.T) {
	images := map[string]string{
		"9780000000019": "b.png",
		"9780000000002": "a.png",
		"9780306406157": "c.png",
	}

	got := sortedISBNs(images)
	expected := []string{"9780000000002", "9780000000019", "9780306406157"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("sortedISBNs order = %v, expected %v", got, expected)
		}
	}
}
