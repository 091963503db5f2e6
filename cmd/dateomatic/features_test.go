package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/dateomatic/internal/dicomdate"
)

// testContext holds state for a single scenario
type testContext struct {
	tmpDir   string
	exitCode int
	output   string
	stderr   string
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tmpDir, err := os.MkdirTemp("", "dateomatic-e2e-*")
		if err != nil {
			return ctx, err
		}
		tc.tmpDir = tmpDir
		return ctx, nil
	})

	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.tmpDir != "" {
			os.RemoveAll(tc.tmpDir)
		}
		return ctx, nil
	})

	sc.Step(`^a (?:config )?file "([^"]*)" with:$`, tc.aFileWith)
	sc.Step(`^a DICOM file "([^"]*)" with (\w+) "([^"]*)"$`, tc.aDICOMFileWith)
	sc.Step(`^I run dateomatic with "([^"]*)"$`, tc.iRunDateomaticWith)
	sc.Step(`^the exit code should be (\d+)$`, tc.theExitCodeShouldBe)
	sc.Step(`^the output should contain "([^"]*)"$`, tc.theOutputShouldContain)
	sc.Step(`^the output should contain the line "([^"]*)"$`, tc.theOutputShouldContainLine)
	sc.Step(`^the output should not contain the line "([^"]*)"$`, tc.theOutputShouldNotContainLine)
	sc.Step(`^the output should have (\d+) lines$`, tc.theOutputShouldHaveLines)
	sc.Step(`^line (\d+) should be "([^"]*)"$`, tc.lineShouldBe)
	sc.Step(`^the output should be empty$`, tc.theOutputShouldBeEmpty)
	sc.Step(`^stderr should contain "([^"]*)"$`, tc.stderrShouldContain)
}

func (tc *testContext) path(p string) string {
	return strings.ReplaceAll(p, "{tmpdir}", tc.tmpDir)
}

func (tc *testContext) aFileWith(name string, content *godog.DocString) error {
	return os.WriteFile(tc.path(name), []byte(content.Content+"\n"), 0644)
}

func (tc *testContext) aDICOMFileWith(name, tagName, value string) error {
	t, err := dicomdate.ParseTag(tagName)
	if err != nil {
		return err
	}
	path := tc.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var elements []*dicom.Element
	for _, e := range []struct {
		tag   tag.Tag
		value []string
	}{
		{tag.MediaStorageSOPClassUID, []string{"1.2.840.10008.5.1.4.1.1.4"}},
		{tag.MediaStorageSOPInstanceUID, []string{"1.2.826.0.1.3680043.8.498.42"}},
		{tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}},
		{t, []string{value}},
	} {
		elem, err := dicom.NewElement(e.tag, e.value)
		if err != nil {
			return fmt.Errorf("create element %v: %w", e.tag, err)
		}
		elements = append(elements, elem)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dicom.Write(f, dicom.Dataset{Elements: elements})
}

func (tc *testContext) iRunDateomaticWith(args string) error {
	argList := append([]string{"dateomatic"}, splitArgs(tc.path(args))...)

	var stdout, stderr bytes.Buffer
	tc.exitCode = run(context.Background(), argList, &stdout, &stderr)
	tc.output = stdout.String()
	tc.stderr = stderr.String()
	return nil
}

func (tc *testContext) lines() []string {
	if tc.output == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(tc.output, "\n"), "\n")
}

func (tc *testContext) theExitCodeShouldBe(expected int) error {
	if tc.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nOutput:\n%s\nStderr:\n%s", expected, tc.exitCode, tc.output, tc.stderr)
	}
	return nil
}

func (tc *testContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(tc.output, expected) {
		return fmt.Errorf("output does not contain %q\nOutput:\n%s", expected, tc.output)
	}
	return nil
}

func (tc *testContext) theOutputShouldContainLine(expected string) error {
	for _, l := range tc.lines() {
		if l == expected {
			return nil
		}
	}
	return fmt.Errorf("output has no line %q", expected)
}

func (tc *testContext) theOutputShouldNotContainLine(unexpected string) error {
	for _, l := range tc.lines() {
		if l == unexpected {
			return fmt.Errorf("output has unexpected line %q", unexpected)
		}
	}
	return nil
}

func (tc *testContext) theOutputShouldHaveLines(count int) error {
	if n := len(tc.lines()); n != count {
		return fmt.Errorf("expected %d lines, got %d", count, n)
	}
	return nil
}

func (tc *testContext) lineShouldBe(n int, expected string) error {
	lines := tc.lines()
	if n < 1 || n > len(lines) {
		return fmt.Errorf("output has %d lines, no line %d", len(lines), n)
	}
	if lines[n-1] != expected {
		return fmt.Errorf("line %d is %q, want %q", n, lines[n-1], expected)
	}
	return nil
}

func (tc *testContext) theOutputShouldBeEmpty() error {
	if tc.output != "" {
		return fmt.Errorf("expected no output, got:\n%s", tc.output)
	}
	return nil
}

func (tc *testContext) stderrShouldContain(expected string) error {
	if !strings.Contains(tc.stderr, expected) {
		return fmt.Errorf("stderr does not contain %q\nStderr:\n%s", expected, tc.stderr)
	}
	return nil
}

// splitArgs splits a command line string into arguments
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
