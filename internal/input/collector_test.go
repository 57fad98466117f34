package input

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectArgsOnly(t *testing.T) {
	got, err := Collect([]string{"9780306406157", "0306406152"}, "")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	expected := []string{"9780306406157", "0306406152"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Collect = %v, expected %v", got, expected)
	}
}

func TestCollectArgsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isbns.txt")
	content := "9780000000002\n  978-0-306-40615-7  \n\n0306406152\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Collect([]string{"9780000000019"}, path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	expected := []string{"9780000000019", "9780000000002", "978-0-306-40615-7", "", "0306406152"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Collect = %v, expected %v", got, expected)
	}
}

func TestCollectMissingFileIsFatal(t *testing.T) {
	_, err := Collect(nil, filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCollectEmptyInput(t *testing.T) {
	got, err := Collect(nil, "")
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}
