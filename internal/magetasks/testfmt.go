package magetasks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/magefile/mage/sh"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// PackageResult holds aggregated test results for a package.
type PackageResult struct {
	Name        string
	Passed      int
	Failed      int
	Skipped     int
	Duration    time.Duration
	Coverage    float64
	FailedTests []string
	Done        bool
}

// TestFormatter aggregates go test events into a summary table.
type TestFormatter struct {
	packages map[string]*PackageResult
	writer   io.Writer
	styled   bool
}

// NewTestFormatter creates a test formatter writing to w.
func NewTestFormatter(w io.Writer, styled bool) *TestFormatter {
	return &TestFormatter{
		packages: make(map[string]*PackageResult),
		writer:   w,
		styled:   styled,
	}
}

// RunTests executes go test with JSON output and formats results.
func (f *TestFormatter) RunTests(args []string) error {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		_, err := sh.Exec(nil, pw, os.Stderr, "go", append([]string{"test", "-json"}, args...)...)
		_ = pw.Close()
		done <- err
	}()

	if err := f.Process(pr); err != nil {
		_ = pr.Close()
		<-done
		return err
	}
	err := <-done

	f.Render()
	return err
}

// Process reads go test -json events from r until EOF.
func (f *TestFormatter) Process(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var event TestEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue // not a test event
		}
		f.processEvent(event)
	}
	return scanner.Err()
}

func (f *TestFormatter) processEvent(event TestEvent) {
	if event.Package == "" {
		return
	}
	pkg := f.getOrCreatePackage(event.Package)

	switch event.Action {
	case "pass", "fail":
		if event.Test == "" {
			pkg.Duration = time.Duration(event.Elapsed * float64(time.Second))
			pkg.Done = true
			return
		}
		if event.Action == "pass" {
			pkg.Passed++
			return
		}
		pkg.Failed++
		pkg.FailedTests = append(pkg.FailedTests, event.Test)

	case "skip":
		if event.Test != "" {
			pkg.Skipped++
		}

	case "output":
		if strings.Contains(event.Output, "coverage:") && strings.Contains(event.Output, "% of statements") {
			parseCoverage(pkg, event.Output)
		}
	}
}

func (f *TestFormatter) getOrCreatePackage(name string) *PackageResult {
	if pkg, ok := f.packages[name]; ok {
		return pkg
	}
	pkg := &PackageResult{Name: name}
	f.packages[name] = pkg
	return pkg
}

func parseCoverage(pkg *PackageResult, output string) {
	// "coverage: 45.2% of statements"
	idx := strings.Index(output, "coverage:")
	var cov float64
	_, _ = fmt.Sscanf(output[idx:], "coverage: %f%% of statements", &cov)
	if cov > 0 {
		pkg.Coverage = cov
	}
}

// Results returns the finished packages sorted by group, then name.
func (f *TestFormatter) Results() []*PackageResult {
	var out []*PackageResult
	for _, pkg := range f.packages {
		if pkg.Done {
			out = append(out, pkg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := topLevelDir(out[i].Name), topLevelDir(out[j].Name)
		if gi != gj {
			return gi < gj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Render writes the summary table.
func (f *TestFormatter) Render() {
	t := table.NewWriter()
	t.SetOutputMirror(f.writer)
	t.SetTitle("Test Results")
	t.AppendHeader(table.Row{"Group", "Package", "Pass", "Fail", "Skip", "Coverage", "Time"})

	var passed, failed, skipped int
	for _, pkg := range f.Results() {
		passed += pkg.Passed
		failed += pkg.Failed
		skipped += pkg.Skipped

		cov := ""
		if pkg.Coverage > 0 {
			cov = fmt.Sprintf("%.1f%%", pkg.Coverage)
		}
		t.AppendRow(table.Row{
			topLevelDir(pkg.Name),
			f.status(pkg) + " " + packageBaseName(pkg.Name),
			pkg.Passed,
			pkg.Failed,
			pkg.Skipped,
			cov,
			pkg.Duration.Round(time.Millisecond),
		})
		for _, name := range pkg.FailedTests {
			t.AppendRow(table.Row{"", "  ↳ " + name})
		}
	}
	t.AppendFooter(table.Row{"", "Total", passed, failed, skipped})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func (f *TestFormatter) status(pkg *PackageResult) string {
	mark, color := "✓", text.FgGreen
	if pkg.Failed > 0 {
		mark, color = "✗", text.FgRed
	}
	if !f.styled {
		return mark
	}
	return color.Sprint(mark)
}

func topLevelDir(name string) string {
	for _, dir := range []string{"internal", "cmd", "pkg"} {
		if strings.Contains(name, "/"+dir+"/") {
			return dir
		}
	}
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

func packageBaseName(name string) string {
	for _, dir := range []string{"/internal/", "/cmd/", "/pkg/"} {
		if idx := strings.Index(name, dir); idx != -1 {
			return name[idx+len(dir):]
		}
	}
	parts := strings.Split(name, "/")
	return parts[len(parts)-1]
}

// RunFormattedTests runs tests with the custom formatter.
func RunFormattedTests(args []string) error {
	formatter := NewTestFormatter(Out, Styled)
	return formatter.RunTests(args)
}
