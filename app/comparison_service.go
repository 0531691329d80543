package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scadaval/domain/core"
	"scadaval/domain/deviation"
	"scadaval/internal"
	apperrors "scadaval/internal/errors"
	"scadaval/ports"
)

// ComparisonService validates a column pair and runs it through the deviation engine
type ComparisonService struct {
	engine ports.DeviationEnginePort
	logger *internal.Logger
}

// ComparisonRequest selects two columns of a loaded table
type ComparisonRequest struct {
	Table   ports.TableReaderPort
	ColumnA string // baseline
	ColumnB string // reference
}

// ComparisonReport is the outcome of one comparison run
type ComparisonReport struct {
	ID          core.ReportID      `json:"id"`
	ColumnA     string             `json:"column_a"`
	ColumnB     string             `json:"column_b"`
	Source      string             `json:"source,omitempty"`
	RowCount    int                `json:"row_count"`
	Records     []deviation.Record `json:"records"`
	Summary     deviation.Summary  `json:"summary"`
	Fingerprint core.Hash          `json:"fingerprint"`
	RuntimeMs   int64              `json:"runtime_ms"`
	CreatedAt   core.Timestamp     `json:"created_at"`
}

// Result returns the records and summary as an engine result
func (r *ComparisonReport) Result() *deviation.Result {
	return &deviation.Result{Records: r.Records, Summary: r.Summary}
}

// NewComparisonService creates a comparison service
func NewComparisonService(engine ports.DeviationEnginePort, logger *internal.Logger) *ComparisonService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ComparisonService{engine: engine, logger: logger}
}

// Compare extracts both columns from the table and compares them
func (s *ComparisonService) Compare(ctx context.Context, req ComparisonRequest) (*ComparisonReport, error) {
	if req.Table == nil {
		return nil, apperrors.InvalidInput("no dataset loaded")
	}
	if err := validateColumns(req.ColumnA, req.ColumnB); err != nil {
		return nil, err
	}

	a, err := req.Table.NumericColumn(req.ColumnA)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read baseline column")
	}
	b, err := req.Table.NumericColumn(req.ColumnB)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read reference column")
	}

	report, err := s.run(ctx, req.ColumnA, req.ColumnB, a, b)
	if err != nil {
		return nil, err
	}
	report.Source = req.Table.Source()
	return report, nil
}

// CompareColumns compares two in-memory columns
func (s *ComparisonService) CompareColumns(ctx context.Context, nameA, nameB string, a, b []deviation.Value) (*ComparisonReport, error) {
	if err := validateColumns(nameA, nameB); err != nil {
		return nil, err
	}
	return s.run(ctx, nameA, nameB, a, b)
}

func (s *ComparisonService) run(ctx context.Context, nameA, nameB string, a, b []deviation.Value) (*ComparisonReport, error) {
	startTime := time.Now()

	if len(a) != len(b) {
		return nil, apperrors.Coded(apperrors.CodeLengthMismatch, core.NewLengthMismatchError(len(a), len(b)))
	}

	result, err := s.engine.Compare(ctx, a, b)
	if err != nil {
		return nil, apperrors.Wrap(err, "comparison failed")
	}

	report := &ComparisonReport{
		ID:          core.NewReportID(),
		ColumnA:     nameA,
		ColumnB:     nameB,
		RowCount:    len(a),
		Records:     result.Records,
		Summary:     result.Summary,
		Fingerprint: fingerprint(nameA, nameB, a, b),
		RuntimeMs:   time.Since(startTime).Milliseconds(),
		CreatedAt:   core.Now(),
	}

	s.logger.Info("[ComparisonService] %s vs %s: %d rows, %d green / %d orange / %d red, %d missing, %d undefined (%dms)",
		nameA, nameB, report.RowCount,
		result.Summary.TierCounts[deviation.TierGreen],
		result.Summary.TierCounts[deviation.TierOrange],
		result.Summary.TierCounts[deviation.TierRed],
		result.Summary.MissingCount, result.Summary.UndefinedCount, report.RuntimeMs)

	return report, nil
}

// validateColumns requires exactly two distinct, named columns
func validateColumns(nameA, nameB string) error {
	if strings.TrimSpace(nameA) == "" || strings.TrimSpace(nameB) == "" {
		return apperrors.InvalidInput("please select exactly two columns")
	}
	if nameA == nameB {
		return apperrors.Coded(apperrors.CodeInvalidInput, fmt.Errorf("%w: %q", core.ErrSameColumn, nameA))
	}
	return nil
}

func fingerprint(nameA, nameB string, a, b []deviation.Value) core.Hash {
	h := core.NewInputHasher()
	h.WriteName(nameA)
	h.WriteName(nameB)
	for i := range a {
		h.WriteCell(a[i].Number, !a[i].IsMissing())
		h.WriteCell(b[i].Number, !b[i].IsMissing())
	}
	return h.Sum()
}
