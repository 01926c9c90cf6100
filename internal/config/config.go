package config

import (
	"net"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	MetricsFile    string

	// Execution settings
	Processors      int
	Seed            uint64
	PropertySamples int

	// Paths to ignore when scanning
	PathsToIgnore []string
	SuiteSuffixes []string

	// Logging
	LogLevel  string
	LogFormat string

	Database DatabaseConfig

	// Command flags
	Flags Flags
}

// DatabaseConfig locates the MySQL run history database
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Archive  bool
}

// Flags holds command-line flags
type Flags struct {
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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:     DefaultProjectPath,
		TestPath:        DefaultTestPath,
		OutputJSONFile:  DefaultOutputJSONFile,
		OutputJSONDir:   DefaultOutputJSONDir,
		Processors:      DefaultProcessors,
		Seed:            DefaultSeed,
		PropertySamples: DefaultPropertySamples,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Database: DatabaseConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy defaults so callers can't mutate the package slices
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	cfg.SuiteSuffixes = make([]string, len(DefaultSuiteSuffixes))
	copy(cfg.SuiteSuffixes, DefaultSuiteSuffixes)
	return cfg
}

// ApplyFlags copies parsed flags into the config, letting non-zero flags
// override file and environment settings.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.MetricsFile != "" {
		c.MetricsFile = flags.MetricsFile
	}
	if flags.Archive {
		c.Database.Archive = true
	}
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and fails use the same file).
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// DatabaseAddr returns host:port of the history database server
func (c *Config) DatabaseAddr() string {
	return net.JoinHostPort(c.Database.Host, c.Database.Port)
}
