package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"mathcheck/internal/config"
	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableRow    = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────┘"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

// PrintMetaStats displays the statistics table of a run followed by the
// failure tree when anything failed.
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Suites", fmt.Sprint(meta.TotalSuites), white},
		{"Passed Suites", fmt.Sprint(meta.PassedSuites), green},
		{"Failed Suites", fmt.Sprint(meta.FailedSuites), red},
		{"Test Cases", fmt.Sprint(meta.TotalTestCases), white},
		{"Passed Test Cases", fmt.Sprint(meta.PassedTestCases), green},
		{"Failed Test Cases", fmt.Sprint(meta.FailedTestCases), red},
		{"Skipped Test Cases", fmt.Sprint(meta.SkippedTestCases), yellow},
		{"Assertions", fmt.Sprint(meta.Assertions), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Seed", fmt.Sprint(meta.Seed), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, tableRow)
		}
	}
	fmt.Fprintln(f.out, tableBottom)

	fmt.Fprintln(f.out)
	if output.Passed() {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d suite(s) failed with %d test case failure(s)\n", meta.FailedSuites, meta.FailedTestCases)
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(output.Details)
}

// PrintFailures prints each failure with its location and expected/actual
// values, in run order.
func (f *Formatter) PrintFailures(failures []domain.TestFailure) {
	for _, failure := range failures {
		red.Fprintf(f.out, "✗ %s › %s\n", failure.SuiteName, failure.TestName)
		if failure.File != "" && failure.Line > 0 {
			cyan.Fprintf(f.out, "    at %s:%d\n", f.relPath(failure.File), failure.Line)
		}
		fmt.Fprintf(f.out, "    %s\n", failure.Message)
		if failure.Expected != "" || failure.Actual != "" {
			green.Fprintf(f.out, "    expected: %s\n", failure.Expected)
			red.Fprintf(f.out, "    received: %s\n", failure.Actual)
		}
		for _, line := range failure.StackTrace {
			fmt.Fprintf(f.out, "      %s\n", line)
		}
	}
}

// TreeNode represents a node in the suite path tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestFailure
	IsFile   bool
}

// printFailedTestsTree prints failures grouped by suite path as a tree
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, failure := range failures {
		parts := strings.Split(filepath.ToSlash(f.relPath(failure.FilePath)), "/")
		current := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			child := current.Children[part]
			if child == nil {
				child = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
				current.Children[part] = child
			}
			current = child
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		if child.IsFile {
			yellow.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
			for j, failure := range child.Failures {
				caseConnector := "├── "
				if j == len(child.Failures)-1 {
					caseConnector = "└── "
				}
				red.Fprintf(f.out, "%s%s%s\n", prefix+childPrefix, caseConnector, failure.TestName)
			}
			continue
		}

		cyan.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		f.printTreeNode(child, prefix+childPrefix)
	}
}

// PrintTestList prints suites, optionally with their test cases.
// Suites whose path is in failedPaths (from the last run) are marked [F].
func (f *Formatter) PrintTestList(suites []*harness.Suite, showTestCases bool, failedPaths map[string]struct{}) {
	if showTestCases {
		green.Fprintf(f.out, "Found %d suite(s) with test cases:\n\n", len(suites))
	} else {
		green.Fprintf(f.out, "Found %d suite(s):\n\n", len(suites))
	}

	for i, suite := range suites {
		lastSuite := i == len(suites)-1

		failMarker := ""
		if _, ok := failedPaths[suite.Path]; ok {
			failMarker = " " + red.Sprint("[F]")
		}

		connector, childPrefix := "├── ", "│   "
		if lastSuite {
			connector, childPrefix = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s", connector, f.relPath(suite.Path))
		fmt.Fprintf(f.out, "%s\n", failMarker)

		if !showTestCases {
			continue
		}

		if suite.LoadErr != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, red.Sprintf("(load error: %v)", suite.LoadErr))
		} else if suite.Len() == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, red.Sprint("(no test cases found)"))
		}
		names := suite.CaseNames()
		for j, name := range names {
			caseConnector := "├── "
			if j == len(names)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", childPrefix, caseConnector, yellow.Sprint(name))
		}

		if !lastSuite {
			fmt.Fprintln(f.out)
		}
	}
}

// relPath shortens file paths relative to the project; builtin paths are
// returned unchanged.
func (f *Formatter) relPath(path string) string {
	if strings.HasPrefix(path, harness.BuiltinPrefix) || f.config.ProjectPath == "" {
		return path
	}
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
