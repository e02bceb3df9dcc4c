package inputs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bestest-extract/internal/errs"
)

func createFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		"input/EnergyPlus/9.0.1/TF/TF_Output.xlsx",
		"input/EnergyPlus/9.0.1/TF/~$TF_Output.xlsx",
		"input/EnergyPlus/9.0.1/GC/GC_Output.xlsx",
		"input/.git/config",
		"results/energyplus-9.0.1-tf.json",
	)

	files, err := Expand(root, []string{"input", "results/energyplus-9.0.1-tf.json", "input/EnergyPlus"})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "input/EnergyPlus/9.0.1/GC/GC_Output.xlsx"),
		filepath.Join(root, "input/EnergyPlus/9.0.1/TF/TF_Output.xlsx"),
		filepath.Join(root, "results/energyplus-9.0.1-tf.json"),
	}
	if len(files) != len(want) {
		t.Fatalf("Expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestExpandMissing(t *testing.T) {
	_, err := Expand(t.TempDir(), []string{"nope"})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestRoute(t *testing.T) {
	r := Router{Root: "/data", Marker: "input", Workbooks: []string{".xlsx", ".xlsm"}, Documents: ".json"}

	routed := r.Route([]string{
		"/data/input/EnergyPlus/9.0.1/TF/TF_Output.xlsx",
		"/data/Input/TRNSYS/18/GC/GC_Output.XLSM",
		"/data/input/EnergyPlus/notes.txt",
		"/data/results/energyplus-9.0.1-tf.json",
		"/data/inputs/readme.md",
		"/data/my_input_files/TF_Output.xlsx",
	})

	tests := []struct {
		name string
		got  []string
		want int
	}{
		{"extract", routed.Extract, 2},
		{"report", routed.Report, 1},
		{"ignored", routed.Ignored, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.got) != tt.want {
				t.Errorf("Expected %d files, got %d: %v", tt.want, len(tt.got), tt.got)
			}
		})
	}
}

func TestRouteRootUnderMarker(t *testing.T) {
	r := Router{Root: "/home/me/input/bestest", Marker: "input", Workbooks: []string{".xlsx"}, Documents: ".json"}

	routed := r.Route([]string{
		"/home/me/input/bestest/results/energyplus-9.0.1-tf.json",
		"/home/me/input/bestest/notes/TF_Output.xlsx",
		"/home/me/input/bestest/input/EnergyPlus/9.0.1/TF/TF_Output.xlsx",
		"/home/me/input/other/TF_Output.xlsx",
	})

	if len(routed.Report) != 1 || routed.Report[0] != "/home/me/input/bestest/results/energyplus-9.0.1-tf.json" {
		t.Errorf("Expected the result document to be reported, got %v", routed.Report)
	}
	if len(routed.Extract) != 1 || routed.Extract[0] != "/home/me/input/bestest/input/EnergyPlus/9.0.1/TF/TF_Output.xlsx" {
		t.Errorf("Expected only the workbook below root/input to be extracted, got %v", routed.Extract)
	}
	if len(routed.Ignored) != 2 {
		t.Errorf("Expected 2 ignored files, got %v", routed.Ignored)
	}
}
