package main

import (
	"bytes"
	"context"
	"testing"

	"scadaval/app"
	"scadaval/domain/deviation"
	"scadaval/internal"
	dev "scadaval/internal/deviation"
	"scadaval/internal/presentation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceReport(t *testing.T) *app.ComparisonReport {
	t.Helper()
	svc := app.NewComparisonService(dev.NewEngine(dev.DefaultOptions(), internal.Discard()), internal.Discard())
	report, err := svc.CompareColumns(context.Background(), "SCADA", "Reference",
		[]deviation.Value{deviation.Of(100), deviation.Of(50), deviation.Of(0), deviation.Missing()},
		deviation.Values(98, 55, 10, 20))
	require.NoError(t, err)
	return report
}

func TestPrinter_PlainReport(t *testing.T) {
	var buf bytes.Buffer
	newPrinter(&buf, false).printReport(referenceReport(t))

	out := buf.String()
	assert.Contains(t, out, "Percentage")
	assert.Contains(t, out, "2.00%")
	assert.Contains(t, out, "-10.00%")
	assert.Contains(t, out, "Missing value")
	assert.Contains(t, out, "Average Percentage Deviation (absolute): 6.00%")
	assert.Contains(t, out, "Missing: 1  Undefined: 1")
	assert.Contains(t, out, "Green (-2% to +2%)")
	assert.NotContains(t, out, "\x1b[", "no escape codes without colour")
}

func TestPrinter_NoChartData(t *testing.T) {
	svc := app.NewComparisonService(dev.NewEngine(dev.DefaultOptions(), internal.Discard()), internal.Discard())
	report, err := svc.CompareColumns(context.Background(), "A", "B",
		[]deviation.Value{deviation.Missing()}, deviation.Values(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	newPrinter(&buf, false).printReport(report)
	assert.Contains(t, buf.String(), presentation.NoChartData)
	assert.Contains(t, buf.String(), "SCADA Result Deviation: N/A")
}

func TestUseColor_NonTerminal(t *testing.T) {
	assert.False(t, useColor(&bytes.Buffer{}, false))
	assert.False(t, useColor(&bytes.Buffer{}, true))
}
