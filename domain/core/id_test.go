package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseDatasetID tests dataset ID parsing
func TestParseDatasetID(t *testing.T) {
	valid := NewDatasetID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"  " + valid + " ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseDatasetID(test.input)
		if test.hasError {
			if err == nil {
				t.Errorf("Expected error for input '%s', got nil", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result.String() != valid {
			t.Errorf("Expected %s, got %s", valid, result)
		}
	}
}

// TestParseColumnKey tests column key parsing
func TestParseColumnKey(t *testing.T) {
	if _, err := ParseColumnKey(" "); err == nil {
		t.Error("Expected error for blank column name")
	}
	key, err := ParseColumnKey("SCADA kWh")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if key.String() != "SCADA kWh" {
		t.Errorf("Expected 'SCADA kWh', got '%s'", key)
	}
}

// TestInputHasher_MissingDiffersFromNumbers tests that missing cells and NaN hash differently
func TestInputHasher_MissingDiffersFromNumbers(t *testing.T) {
	hash := func(v float64, present bool) Hash {
		h := NewInputHasher()
		h.WriteName("a")
		h.WriteCell(v, present)
		return h.Sum()
	}

	if hash(0, false).Equals(hash(0, true)) {
		t.Error("Expected missing cell and zero to hash differently")
	}
	if !hash(1.5, true).Equals(hash(1.5, true)) {
		t.Error("Expected identical input to hash identically")
	}
	if len(hash(1, true).Short()) != 12 {
		t.Error("Expected 12 character short hash")
	}
}
