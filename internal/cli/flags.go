package cli

import "mathcheck/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Global
	ProjectPath string
	ConfigFile  string
	LogLevel    string
	LogFormat   string

	Processors  int
	TestPath    string
	NameFilter  string
	CaseFilter  string
	TestCases   bool
	FailFast    bool
	OnlyFailed  bool
	NoBuiltin   bool
	OpenFails   bool
	Archive     bool
	Seed        uint64
	MetricsFile string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:  f.Processors,
		TestPath:    f.TestPath,
		NameFilter:  f.NameFilter,
		CaseFilter:  f.CaseFilter,
		TestCases:   f.TestCases,
		FailFast:    f.FailFast,
		OnlyFailed:  f.OnlyFailed,
		NoBuiltin:   f.NoBuiltin,
		OpenFails:   f.OpenFails,
		Archive:     f.Archive,
		Seed:        f.Seed,
		MetricsFile: f.MetricsFile,
	}
}

// Apply loads the config file and environment, then overlays these flags.
// Order of precedence, lowest first: defaults, file, environment, flags.
func (f *Flags) Apply(cfg *config.Config) error {
	if f.ProjectPath != "" {
		cfg.ProjectPath = f.ProjectPath
	}
	if err := cfg.LoadFile(f.ConfigFile, f.ConfigFile != ""); err != nil {
		return err
	}
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	cfg.ApplyFlags(f.ToConfigFlags())
	return nil
}
