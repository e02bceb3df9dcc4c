package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestest-extract/internal/assemble"
	"bestest-extract/internal/document"
	"bestest-extract/internal/errs"
	"bestest-extract/internal/section"
	"bestest-extract/internal/workbook"
)

func touch(t *testing.T, root, rel string) *workbook.Reference {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	ref, err := workbook.Locate(root, rel)
	require.NoError(t, err)
	return ref
}

func TestName(t *testing.T) {
	root := t.TempDir()
	s := &Store{Dir: "out", Ext: ".json", Marker: "input"}
	sw := assemble.Software{Name: "DOE 2.2", Version: "48r"}

	tests := []struct {
		rel     string
		sw      assemble.Software
		want    string
		wantErr bool
	}{
		{"input/EnergyPlus/9.0.1/Thermal Fabric/Results5-2A_TF_Output.xlsx", sw, "energyplus-9.0.1-thermal_fabric.json", false},
		{"data/Input/TRNSYS/18/GC/GC_Output.xlsx", sw, "trnsys-18-gc.json", false},
		{"input/ESP-r/13.3/extra/deeper/HE_Output.xlsx", sw, "esp-r-13.3-extra.json", false},
		{"input/short/TF_Output.xlsx", sw, "doe_2.2-48r-tf.json", false},
		{"elsewhere/TF_Output.xlsx", sw, "doe_2.2-48r-tf.json", false},
		{"elsewhere/TF_Output.xlsx", assemble.Software{Name: "X"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			ref := touch(t, root, tt.rel)
			got, err := s.Name(ref, section.ThermalFabric, tt.sw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errs.ErrProcessing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir, Ext: ".json", Pretty: true}

	doc := document.NewTree()
	require.NoError(t, doc.Merge("identifying_information", document.Record{"software_name": document.String("EnergyPlus")}))
	cases := document.NewTree()
	require.NoError(t, cases.Merge("600", document.Record{"annual_heating_mwh": document.Number(4.296)}))
	require.NoError(t, doc.Merge("annual_sums_peaks", cases))

	path := filepath.Join(dir, "nested", "energyplus-9.0.1-tf.json")
	require.NoError(t, s.Save(path, doc))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	back, err := Load(path)
	require.NoError(t, err)
	v, ok := back.Lookup("annual_sums_peaks", "600", "annual_heating_mwh")
	require.True(t, ok)
	f, _ := v.Float()
	assert.InDelta(t, 4.296, f, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,2]"), 0644))
	_, err = Load(bad)
	assert.True(t, errors.Is(err, errs.ErrUnsupportedType))
}
