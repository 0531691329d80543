package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ReportID  ID
	DatasetID ID
	ColumnKey ID
)

func (id ReportID) String() string  { return ID(id).String() }
func (id DatasetID) String() string { return ID(id).String() }
func (id ColumnKey) String() string { return ID(id).String() }

// NewReportID creates an identifier for a comparison report
func NewReportID() ReportID { return ReportID(NewID()) }

// NewDatasetID creates an identifier for a cached uploaded dataset
func NewDatasetID() DatasetID { return DatasetID(NewID()) }

// ParseDatasetID parses a string into DatasetID
func ParseDatasetID(s string) (DatasetID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("dataset ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("dataset ID %q is not a valid UUID: %w", s, err)
	}
	return DatasetID(s), nil
}

// ParseColumnKey parses a column header into a ColumnKey
func ParseColumnKey(s string) (ColumnKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("column name cannot be empty")
	}
	return ColumnKey(s), nil
}
