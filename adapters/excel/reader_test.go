package excel

import (
	"errors"
	"os"
	"testing"

	"scadaval/domain/core"
	"scadaval/domain/deviation"
	"scadaval/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		raw     string
		want    deviation.Value
		wantErr bool
	}{
		{"12.5", deviation.Of(12.5), false},
		{" -3 ", deviation.Of(-3), false},
		{"1e3", deviation.Of(1000), false},
		{"", deviation.Missing(), false},
		{" ", deviation.Missing(), false},
		{"NaN", deviation.Missing(), false},
		{"#N/A", deviation.Missing(), false},
		{"null", deviation.Missing(), false},
		{"abc", deviation.Value{}, true},
		{"inf", deviation.Value{}, true},
		{"1,000", deviation.Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCell(tt.raw)
			assert.Equal(t, !tt.wantErr, ok)
			if ok {
				assert.Equal(t, tt.want.IsMissing(), got.IsMissing())
				assert.Equal(t, tt.want.Number, got.Number)
			}
		})
	}
}

func TestNormaliseHeaders(t *testing.T) {
	got := normaliseHeaders([]string{" SCADA ", "", "SCADA", "SCADA", "Unnamed: 1"})
	assert.Equal(t, []string{"SCADA", "Unnamed: 1", "SCADA.1", "SCADA.2", "Unnamed: 1.1"}, got)
}

func TestDataReader_ReadsWorkbook(t *testing.T) {
	path := testkit.ReadingsWorkbook(t,
		[]testkit.Cell{100, 50, 0, nil},
		[]testkit.Cell{98, 55, 10, 20},
	)

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"SCADA", "Reference"}, data.Columns())
	assert.Equal(t, 4, data.RowCount())
	assert.Equal(t, "readings.xlsx[Sheet1]", data.Source())

	scada, err := data.NumericColumn("SCADA")
	require.NoError(t, err)
	require.Len(t, scada, 4)
	assert.Equal(t, 100.0, scada[0].Number)
	assert.True(t, scada[3].IsMissing())
}

func TestDataReader_RawValuesIgnoreNumberFormat(t *testing.T) {
	path := testkit.WriteWorkbook(t, "precise.xlsx", []string{"A", "B"}, [][]testkit.Cell{
		{1234.5678, 0.001},
	})

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	a, err := data.NumericColumn("A")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5678, a[0].Number, 1e-9)
}

func TestDataReader_SelectsSheet(t *testing.T) {
	path := testkit.WriteWorkbookSheet(t, "named.xlsx", "Meters", []string{"X", "Y"}, [][]testkit.Cell{{1, 2}})

	data, err := NewDataReaderFromConfig(ExcelConfig{FilePath: path, Sheet: "Meters"}).ReadData()
	require.NoError(t, err)
	assert.Equal(t, "Meters", data.Sheet)

	_, err = NewDataReader(path).WithSheet("Missing").ReadData()
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestDataReader_ReadsCSV(t *testing.T) {
	path := testkit.WriteCSV(t, "readings.csv", [][]string{
		{"SCADA", "Reference", ""},
		{"10", "11", "x"},
		{"", "NA"},
		{"", "", ""},
		{"7", "6.86", ""},
		{"", "", ""},
	})

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"SCADA", "Reference", "Unnamed: 2"}, data.Headers)
	assert.Equal(t, 4, data.RowCount(), "trailing blank row dropped, interior one kept")
	assert.Empty(t, data.Sheet)

	ref, err := data.NumericColumn("Reference")
	require.NoError(t, err)
	assert.True(t, ref[1].IsMissing())
	assert.True(t, ref[2].IsMissing())
	assert.Equal(t, 6.86, ref[3].Number)
}

func TestDataReader_NonNumericCell(t *testing.T) {
	path := testkit.WriteCSV(t, "bad.csv", [][]string{
		{"A", "B"},
		{"1", "2"},
		{"oops", "3"},
	})

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	_, err = data.NumericColumn("A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNonNumeric))
	assert.Contains(t, err.Error(), "row 3")

	_, err = data.NumericColumn("C")
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
}

func TestDataReader_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewDataReader("readings.txt").ReadData()
		assert.True(t, errors.Is(err, core.ErrUnsupportedFile))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewDataReader("/nonexistent/readings.xlsx").ReadData()
		assert.True(t, errors.Is(err, core.ErrNotFound))
	})

	t.Run("header only", func(t *testing.T) {
		path := testkit.WriteCSV(t, "empty.csv", [][]string{{"A", "B"}})
		_, err := NewDataReader(path).ReadData()
		assert.True(t, errors.Is(err, core.ErrEmptyDataset))
	})
}

func TestReadFrom_Upload(t *testing.T) {
	path := testkit.ReadingsWorkbook(t, []testkit.Cell{1, 2}, []testkit.Cell{1, 3})
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	data, err := ReadFrom(file, "upload.xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, "upload.xlsx", data.Name)
	assert.Equal(t, 2, data.RowCount())

	_, err = ReadFrom(file, "upload.json", "")
	assert.True(t, errors.Is(err, core.ErrUnsupportedFile))
}
