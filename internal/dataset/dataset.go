// internal/dataset/dataset.go
// Package dataset loads and validates the benchmark query fixtures. Each task
// family lives in datasets/<family>/queries.json and is schema-checked before a
// single query runs.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultTolerance is the relative numeric tolerance applied when an item does
// not specify one.
const DefaultTolerance = 0.05

// Tolerance is the allowed relative numeric deviation for a correct answer.
// In fixture JSON it is either a fraction or the string "exact", which disables
// the numeric fallback entirely.
type Tolerance struct {
	Value float64
	Exact bool
}

// UnmarshalJSON accepts a number, the string "exact", or a numeric string.
// Anything unparsable falls back to the default.
func (t *Tolerance) UnmarshalJSON(data []byte) error {
	t.Value = DefaultTolerance
	t.Exact = false

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		t.Value = num
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(s), "exact") {
		t.Exact = true
		t.Value = 0
		return nil
	}
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		t.Value = parsed
	}
	return nil
}

// MarshalJSON writes "exact" for exact-only items and the fraction otherwise.
func (t Tolerance) MarshalJSON() ([]byte, error) {
	if t.Exact {
		return json.Marshal("exact")
	}
	return json.Marshal(t.Value)
}

// Expected is an expected answer, which fixtures give as a string or a number.
type Expected string

// UnmarshalJSON normalizes numeric expected answers to their string form.
func (e *Expected) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Expected(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected_answer must be a string or number: %s", string(data))
	}
	*e = Expected(num.String())
	return nil
}

// QueryItem is one benchmark query. Immutable after load.
type QueryItem struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Domain    string    `json:"domain"`
	Expected  Expected  `json:"expected_answer"`
	Tolerance Tolerance `json:"tolerance"`
}

// Family is the parsed contents of one task family fixture file.
type Family struct {
	TaskFamily string      `json:"task_family"`
	Queries    []QueryItem `json:"queries"`
}

// LoadFamily reads and validates the fixture file for one task family.
// A missing file is reported via os.ErrNotExist so callers can skip the family
// instead of aborting the run.
func LoadFamily(datasetsDir, family string) (Family, error) {
	path := filepath.Join(datasetsDir, family, "queries.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return Family{}, fmt.Errorf("reading query fixtures for %s: %w", family, err)
	}

	if err := validateFixture(raw); err != nil {
		return Family{}, fmt.Errorf("invalid query fixtures in %s: %w", path, err)
	}

	var fam Family
	if err := json.Unmarshal(raw, &fam); err != nil {
		return Family{}, fmt.Errorf("parsing query fixtures in %s: %w", path, err)
	}
	if fam.TaskFamily == "" {
		fam.TaskFamily = family
	}
	applyDefaults(&fam)
	return fam, nil
}

// applyDefaults fills the default tolerance for items that omitted the field.
// Tolerance zero with Exact unset means the field was absent.
func applyDefaults(fam *Family) {
	for i := range fam.Queries {
		item := &fam.Queries[i]
		if !item.Tolerance.Exact && item.Tolerance.Value == 0 {
			item.Tolerance.Value = DefaultTolerance
		}
		if strings.TrimSpace(item.Domain) == "" {
			item.Domain = "general"
		}
	}
}

// validateFixture checks the raw fixture document against the embedded schema.
func validateFixture(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(fixtureSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	var issues []string
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(issues, "; "))
}
