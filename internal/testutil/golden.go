// Package testutil provides shared test infrastructure: golden report
// files and float assertion helpers used across risk/, report/ and array/
// test packages.
package testutil

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

var update = flag.Bool("update", false, "rewrite golden files under testdata/")

// goldenPath resolves name relative to this source file:
// internal/testutil/ → repo root testdata/.
func goldenPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", name)
}

// ReadGolden returns the contents of testdata/<name>.
func ReadGolden(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(goldenPath(t, name))
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", name, err)
	}
	return string(data)
}

// AssertGolden compares got against testdata/<name>. Run the test with
// -update to rewrite the file instead.
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()

	if *update {
		if err := os.WriteFile(goldenPath(t, name), []byte(got), 0o644); err != nil {
			t.Fatalf("Failed to update golden file %s: %v", name, err)
		}
		return
	}
	want := ReadGolden(t, name)
	if got != want {
		t.Errorf("%s mismatch\n--- want\n%s\n--- got\n%s", name, want, got)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
