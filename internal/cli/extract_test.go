package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slicelog/internal/dataset"
	"github.com/hupe1980/slicelog/internal/record"
)

func benchyExtractor() *stubExtractor {
	return &stubExtractor{
		recs: map[string]record.Record{
			"benchy.3mf": {
				FileName:      "benchy.3mf",
				FilamentColor: "Red",
				FilamentMM:    "1234.5",
				PrintTime:     "1h 2m",
			},
		},
		fail: map[string]bool{"broken.3mf": true},
	}
}

func TestExtractCommand_YAML(t *testing.T) {
	useExtractor(t, benchyExtractor())

	stdout, _, err := executeCommand("extract", "benchy.3mf")
	require.NoError(t, err)

	assert.Contains(t, stdout, "File Name: benchy.3mf")
	assert.Contains(t, stdout, "Filament Color: Red")
	assert.Contains(t, stdout, "Estimated Print Time: 1h 2m")
}

func TestExtractCommand_JSON(t *testing.T) {
	useExtractor(t, benchyExtractor())

	stdout, _, err := executeCommand("extract", "--format", "json", "benchy.3mf", "other.3mf")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "1234.5", rows[0][record.ColumnFilamentMM])
	assert.Equal(t, "other.3mf", rows[1][record.ColumnFileName])
	assert.Equal(t, record.NotAvailable, rows[1][record.ColumnPrintTime])
}

func TestExtractCommand_FailureReportedAfterAllFiles(t *testing.T) {
	ex := benchyExtractor()
	useExtractor(t, ex)

	stdout, stderr, err := executeCommand("extract", "--no-color", "broken.3mf", "benchy.3mf")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "1 of 2 file(s) could not be processed")
	assert.Contains(t, stderr, "❌ Error running slicer CLI: broken.3mf")
	assert.Contains(t, stdout, "benchy.3mf")
	assert.Equal(t, []string{"broken.3mf", "benchy.3mf"}, ex.Calls())
}

func TestExtractCommand_AppendWritesDataset(t *testing.T) {
	useExtractor(t, benchyExtractor())

	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, stderr, err := executeCommand("extract", "--append", "--dataset", path, "benchy.3mf", "broken.3mf")
	require.Error(t, err)
	assert.Contains(t, stderr, "✅ Data added to "+path)

	ds, err := dataset.Read(path)
	require.NoError(t, err)

	recs := ds.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "Red", recs[0].FilamentColor)
}

func TestExtractCommand_WithoutAppendLeavesDatasetAlone(t *testing.T) {
	useExtractor(t, benchyExtractor())

	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, _, err := executeCommand("extract", "--dataset", path, "benchy.3mf")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractCommand_OutputFile(t *testing.T) {
	useExtractor(t, benchyExtractor())

	path := filepath.Join(t.TempDir(), "rows.csv")

	stdout, _, err := executeCommand("extract", "--format", "csv", "-o", path, "benchy.3mf")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"File Name,Filament Color,Filament Amount (mm),Estimated Print Time\nbenchy.3mf,Red,1234.5,1h 2m\n",
		string(data))
}

func TestExtractCommand_InvalidFormat(t *testing.T) {
	useExtractor(t, benchyExtractor())

	_, _, err := executeCommand("extract", "--format", "xml", "benchy.3mf")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestExtractCommand_RequiresFile(t *testing.T) {
	useExtractor(t, benchyExtractor())

	_, _, err := executeCommand("extract")
	require.Error(t, err)
}
