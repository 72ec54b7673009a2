package core

import (
	"errors"
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

func TestParseDatasetID(t *testing.T) {
	fresh := NewDatasetID()

	tests := []struct {
		input    string
		hasError bool
	}{
		{fresh.String(), false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseDatasetID(test.input)
		if test.hasError {
			if err == nil {
				t.Errorf("ParseDatasetID(%q) expected error, got %q", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDatasetID(%q) unexpected error: %v", test.input, err)
		}
		if result != fresh {
			t.Errorf("ParseDatasetID(%q) = %q", test.input, result)
		}
	}
}

func TestComputeFingerprintDeterministic(t *testing.T) {
	type payload struct {
		A string
		B []float64
	}
	h1, err := ComputeFingerprint(payload{A: "x", B: []float64{1, 2}})
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	h2, _ := ComputeFingerprint(payload{A: "x", B: []float64{1, 2}})
	h3, _ := ComputeFingerprint(payload{A: "x", B: []float64{2, 1}})

	if h1 != h2 {
		t.Errorf("Expected equal fingerprints, got %s and %s", h1, h2)
	}
	if h1 == h3 {
		t.Error("Expected different fingerprints for different payloads")
	}
}

func TestAnalysisErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{&InsufficientCategoriesError{Variable: "gender", Found: 1, Required: 2}, ErrInsufficientCategories},
		{&InsufficientSampleSizeError{Test: "pearson", Observed: 2, Required: 3}, ErrInsufficientSampleSize},
		{&DegenerateInputError{Test: "pearson", Reason: "zero variance"}, ErrDegenerateInput},
		{&UnavailableSignificanceError{Test: "chi_square", Reason: "no source"}, ErrUnavailableSignificance},
	}

	for _, test := range tests {
		if !errors.Is(test.err, test.sentinel) {
			t.Errorf("%v does not unwrap to %v", test.err, test.sentinel)
		}
		if !IsAnalysisError(test.err) {
			t.Errorf("IsAnalysisError(%v) = false", test.err)
		}
	}

	if IsAnalysisError(ErrDatasetNotFound) {
		t.Error("not-found error classified as analysis error")
	}
}
