package excel

import (
	"bytes"
	"strings"
	"testing"

	"scadaval/domain/deviation"
	dev "scadaval/internal/deviation"
	"scadaval/internal/presentation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportResults(t *testing.T) {
	a := []deviation.Value{deviation.Of(100), deviation.Of(50), deviation.Of(0), deviation.Missing()}
	b := deviation.Values(98, 55, 10, 20)
	result, err := dev.Compare(a, b)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportResults(&buf, "SCADA", "Reference", result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{resultsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Column1", "Column2", "Value1", "Value2", "Difference", "Percentage"}, rows[0])
	assert.Equal(t, "2.00%", rows[1][5])
	assert.Equal(t, "-10.00%", rows[2][5])
	assert.Equal(t, presentation.NotApplicable, rows[3][5])
	assert.Equal(t, presentation.MissingValue, rows[4][4])

	style, err := f.GetCellStyle(resultsSheet, "A2")
	require.NoError(t, err)
	fill, err := f.GetStyle(style)
	require.NoError(t, err)
	require.NotEmpty(t, fill.Fill.Color)
	assert.Contains(t, strings.ToUpper(fill.Fill.Color[0]), presentation.TierHex(deviation.TierGreen))

	unstyled, err := f.GetCellStyle(resultsSheet, "A4")
	require.NoError(t, err)
	assert.Zero(t, unstyled)

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Average percentage deviation", "6.00%"}, summary[2])
	assert.Equal(t, []string{"Result deviation", presentation.FormatCombinedRatio(result.Summary)}, summary[3])
}
