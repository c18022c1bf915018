package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/config"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "banner"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "CODE"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 42))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "Bolt"))
	require.NoError(t, f.SetCellValue("Sheet1", "B4", "Nut"))

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvInput, "")
	t.Setenv(config.EnvOutput, "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunWritesDocument(t *testing.T) {
	input := writeWorkbook(t)
	out := filepath.Join(t.TempDir(), "products_data.json")

	_, err := execute(t, input, "-o", out, "--env-file", "")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["Sheet1"], 2)
	assert.Equal(t, "000042", doc["Sheet1"][0]["CODE"])
	assert.Equal(t, "Sheet1_0002", doc["Sheet1"][1]["CODE"])
	assert.Equal(t, float64(4), doc["Sheet1"][1]["_excel_row"])

	// Same input, same bytes.
	second := filepath.Join(t.TempDir(), "again.json")
	_, err = execute(t, input, "-o", second, "--env-file", "")
	require.NoError(t, err)
	again, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestRunStdout(t *testing.T) {
	input := writeWorkbook(t)

	stdout, err := execute(t, input, "-o", "-", "--pretty=false", "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, `{"Sheet1":[{"Name":"Bolt","CODE":"000042","_excel_row":3},{"Name":"Nut","CODE":"Sheet1_0002","_excel_row":4}]}`+"\n", stdout)
}

func TestRunMissingInput(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.xlsm"), "--env-file", "")
	assert.ErrorContains(t, err, "file not found")

	_, err = execute(t, "--env-file", "")
	assert.ErrorContains(t, err, "no input workbook")
}

func TestRunInvalidStrategy(t *testing.T) {
	input := writeWorkbook(t)
	_, err := execute(t, input, "--strategy", "auto", "--env-file", "")
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestInspectCommand(t *testing.T) {
	input := writeWorkbook(t)

	stdout, err := execute(t, "inspect", input, "--rows", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sheet: Sheet1")
	assert.Contains(t, stdout, "used range: A1:B4")
	assert.Contains(t, stdout, "row 2: [CODE (string), Name (string)]")
	assert.NotContains(t, stdout, "row 3:")
}
