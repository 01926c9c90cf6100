package commands

import (
	"github.com/rs/zerolog/log"

	"mathcheck/internal/config"
	"mathcheck/internal/discovery"
	"mathcheck/internal/harness"
	"mathcheck/internal/suites"
)

// suiteLoader assembles the suites for a run: built-ins first, then the
// discovered suite files, both narrowed by the name filter.
type suiteLoader struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	parser  *discovery.Parser
}

func newSuiteLoader(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter, parser *discovery.Parser) *suiteLoader {
	return &suiteLoader{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		parser:  parser,
	}
}

// Load returns the built-in and discovered suites in run order
func (l *suiteLoader) Load() ([]*harness.Suite, error) {
	pattern := l.config.Flags.NameFilter

	var all []*harness.Suite
	if !l.config.Flags.NoBuiltin {
		for _, s := range suites.Builtin(l.config.Seed, l.config.PropertySamples) {
			if l.filter.Match(s.Name, pattern) {
				all = append(all, s)
			}
		}
	}

	paths, err := l.scanner.Scan(l.config.GetTestPath())
	if err != nil {
		return nil, err
	}
	paths = l.filter.FilterByName(paths, pattern)
	all = append(all, l.parser.LoadAll(paths)...)

	log.Debug().Int("suites", len(all)).Str("filter", pattern).Msg("loaded suites")
	return all, nil
}

// only keeps the suites whose path is in paths
func only(all []*harness.Suite, paths map[string]struct{}) []*harness.Suite {
	var kept []*harness.Suite
	for _, s := range all {
		if _, ok := paths[s.Path]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}
