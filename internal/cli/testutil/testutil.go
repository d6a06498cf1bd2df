// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/samplechart/internal/cli/config"
)

// Datasets are the file fixtures written by SetupTestProject, keyed by sample size.
var Datasets = map[string]string{
	"small": `xColumn:
  values: [0, 1, 2]
yColumn:
  values: [5, 3, 9]
`,
	"medium": `{"xColumn": {"values": [10, 20, 30, 40]}, "yColumn": {"values": [-1, 0, 1, 2]}}`,
	"ragged": `xColumn:
  values: [0, 1, 2]
yColumn:
  values: [7, 8]
`,
}

// SetupTestProject creates a temporary project with a datasets directory and
// changes into it. The config cache is reset when the test ends.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	datasetsDir := filepath.Join(tmpDir, "datasets")
	if err := os.MkdirAll(datasetsDir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", datasetsDir, err)
	}

	for size, content := range Datasets {
		name := size + ".yaml"
		if strings.HasPrefix(content, "{") {
			name = size + ".json"
		}
		if err := os.WriteFile(filepath.Join(datasetsDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	t.Chdir(tmpDir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	return tmpDir
}

// WriteConfig writes samplechart.yaml into dir.
func WriteConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "samplechart.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// Result holds the captured output of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Execute runs root with args, capturing stdout and stderr.
func Execute(t *testing.T, root *cobra.Command, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	err := root.Execute()
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
