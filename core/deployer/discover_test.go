package deployer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverArchivesWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "flows", "billing")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		filepath.Join(dir, "ORDER_1_0.iar"),
		filepath.Join(nested, "BILLING_2_0.iar"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "project.car"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := DiscoverArchives(dir, ".iar")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %v", files)
	}
	if filepath.Base(files[0]) != "ORDER_1_0.iar" || filepath.Base(files[1]) != "BILLING_2_0.iar" {
		t.Fatalf("unexpected files: %v", files)
	}
}

func TestDiscoverArchivesEmptyDirectory(t *testing.T) {
	if _, err := DiscoverArchives(t.TempDir(), ".iar"); err == nil {
		t.Fatal("expected error for directory without archives")
	}
}

func TestDiscoverArchivesCommaList(t *testing.T) {
	files, err := DiscoverArchives(" a.iar , b.iar ,, c.iar ", ".iar")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.iar", "b.iar", "c.iar"}
	if len(files) != len(want) {
		t.Fatalf("got %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestDiscoverArchivesEmptyInput(t *testing.T) {
	for name, input := range map[string]string{
		"blank":      "",
		"whitespace": "   ",
		"commasOnly": " , , ",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := DiscoverArchives(input, ".iar"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
