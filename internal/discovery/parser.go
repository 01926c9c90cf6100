package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"mathcheck/internal/arith"
	"mathcheck/internal/harness"
)

// ErrNoTests is returned for suite files that declare no test cases
var ErrNoTests = errors.New("no test found in suite")

// Parser loads suite files into harness suites
type Parser struct {
	suffixes []string
}

// NewParser creates a new Parser. Suffixes are stripped from file names to
// derive default suite names.
func NewParser(suffixes []string) *Parser {
	return &Parser{suffixes: suffixes}
}

type suiteDoc struct {
	Suite string    `yaml:"suite"`
	Tests []caseDoc `yaml:"tests"`
}

type caseDoc struct {
	Name   string      `yaml:"name"`
	Expect []yaml.Node `yaml:"expect"`
}

type expectDoc struct {
	Op          string   `yaml:"op"`
	A           *float64 `yaml:"a"`
	B           *float64 `yaml:"b"`
	ToBe        *float64 `yaml:"toBe"`
	ToBeCloseTo *float64 `yaml:"toBeCloseTo"`
	Digits      *int     `yaml:"digits"`
	Not         bool     `yaml:"not"`
}

// expectation is a validated expectDoc
type expectation struct {
	op      arith.Operation
	a, b    float64
	want    float64
	closeTo bool
	digits  *int // nil uses the harness default
	not     bool
	line    int
}

// LoadSuite parses a suite file. Every assertion is recorded at its line in
// the file.
func (p *Parser) LoadSuite(path string) (*harness.Suite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var doc suiteDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("error parsing suite %s: %w", path, err)
	}
	if len(doc.Tests) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTests)
	}

	name := doc.Suite
	if name == "" {
		name = p.SuiteName(path)
	}
	suite := harness.NewSuite(name, path)

	for i, tc := range doc.Tests {
		if strings.TrimSpace(tc.Name) == "" {
			return nil, fmt.Errorf("%s: test %d has no name", path, i+1)
		}
		if len(tc.Expect) == 0 {
			return nil, fmt.Errorf("%s: test %q has no expectations", path, tc.Name)
		}

		expectations := make([]expectation, 0, len(tc.Expect))
		for j := range tc.Expect {
			e, err := decodeExpectation(&tc.Expect[j])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, tc.Expect[j].Line, err)
			}
			expectations = append(expectations, e)
		}

		suite.Test(tc.Name, func(t *harness.T) {
			for _, e := range expectations {
				ex := harness.Expect(t, e.op.Apply(e.a, e.b)).At(path, e.line)
				if e.not {
					ex = ex.Not()
				}
				switch {
				case e.closeTo && e.digits != nil:
					ex.ToBeCloseTo(e.want, *e.digits)
				case e.closeTo:
					ex.ToBeCloseTo(e.want)
				default:
					ex.ToBe(e.want)
				}
			}
		})
	}

	return suite, nil
}

func decodeExpectation(node *yaml.Node) (expectation, error) {
	var doc expectDoc
	if err := node.Decode(&doc); err != nil {
		return expectation{}, err
	}

	op, err := arith.Lookup(doc.Op)
	if err != nil {
		return expectation{}, err
	}
	if doc.A == nil || doc.B == nil {
		return expectation{}, fmt.Errorf("%s needs both a and b", op.Name)
	}

	e := expectation{op: op, a: *doc.A, b: *doc.B, not: doc.Not, digits: doc.Digits, line: node.Line}
	switch {
	case doc.ToBe != nil && doc.ToBeCloseTo != nil:
		return expectation{}, errors.New("toBe and toBeCloseTo are mutually exclusive")
	case doc.ToBe != nil:
		e.want = *doc.ToBe
	case doc.ToBeCloseTo != nil:
		e.want = *doc.ToBeCloseTo
		e.closeTo = true
	default:
		return expectation{}, errors.New("expectation needs toBe or toBeCloseTo")
	}
	return e, nil
}

// SuiteName derives a suite name from a file path by stripping the suite suffix
func (p *Parser) SuiteName(path string) string {
	base := filepath.Base(path)
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FindTestCases finds all test case names in a suite file, sorted
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	suite, err := p.LoadSuite(filePath)
	if err != nil {
		return nil, err
	}

	testCases := suite.CaseNames()
	sort.Strings(testCases)
	return testCases, nil
}

// LoadAll loads every path, turning load errors into failed suites so a bad
// file is reported instead of aborting the run.
func (p *Parser) LoadAll(paths []string) []*harness.Suite {
	suites := make([]*harness.Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := p.LoadSuite(path)
		if err != nil {
			suites = append(suites, harness.FailedSuite(p.SuiteName(path), path, err))
			continue
		}
		suites = append(suites, suite)
	}
	return suites
}
