package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileCSV(t *testing.T) {
	path := writeTempCSV(t, "Site Name,WNTD,Status\nSITE-001,W123,in_progress\nSITE-002,W456,\n")

	rows, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "SITE-001", rows[0]["Site Name"])
	assert.Equal(t, "W123", rows[0]["WNTD"])
	assert.Equal(t, "", rows[1]["Status"])
}

func TestReadFileCSVRaggedRows(t *testing.T) {
	// Short records expose missing trailing cells as empty strings.
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	rows, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "2", rows[0]["b"])
	assert.Equal(t, "", rows[0]["c"])
}

func TestReadFileCSVStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\uFEFFname,value\nx,1\n")

	rows, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "x", rows[0]["name"])
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadFileEmpty(t *testing.T) {
	path := writeTempCSV(t, "")
	_, err := ReadFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadFileHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n")
	_, err := ReadFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.txt")
	assert.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	_, err := ReadFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestReadFileExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	assert.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Site Name", "WNTD"}))
	assert.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"SITE-001", "W123"}))
	assert.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"", ""})) // blank row is dropped
	assert.NoError(t, f.SetSheetRow(sheet, "A4", &[]string{"SITE-002", "W456"}))
	assert.NoError(t, f.SaveAs(path))
	assert.NoError(t, f.Close())

	rows, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "SITE-001", rows[0]["Site Name"])
	assert.Equal(t, "W456", rows[1]["WNTD"])
}
