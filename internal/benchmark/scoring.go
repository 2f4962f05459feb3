// internal/benchmark/scoring.go
package benchmark

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/probeworks/veritas/internal/dataset"
)

// numberPattern matches the first signed decimal token in a normalized string:
// optional minus sign, digits, optional decimal point and digits.
var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// Correct reports whether a response answers the query. The check applies
// uniformly to all systems: substring match first, then a relative numeric
// tolerance fallback unless the item requires an exact match.
func Correct(response string, expected dataset.Expected, tol dataset.Tolerance) bool {
	responseNorm := strings.ToLower(strings.TrimSpace(response))
	expectedNorm := strings.ToLower(strings.TrimSpace(string(expected)))
	if responseNorm == "" || expectedNorm == "" {
		return false
	}

	if strings.Contains(responseNorm, expectedNorm) {
		return true
	}

	if tol.Exact {
		return false
	}

	responseVal, ok := firstNumber(responseNorm)
	if !ok {
		return false
	}
	expectedVal, ok := firstNumber(expectedNorm)
	if !ok {
		return false
	}
	// A zero expected value would divide by zero; treat as not correct.
	if expectedVal == 0 {
		return false
	}

	return math.Abs(responseVal-expectedVal)/math.Abs(expectedVal) <= tol.Value
}

// firstNumber extracts the first signed decimal token from a string.
func firstNumber(s string) (float64, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(match, "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
