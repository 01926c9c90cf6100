package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test path
	DefaultTestPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".mathcheck"
	// DefaultProcessors is the default number of suites run concurrently
	DefaultProcessors = 1
	// DefaultSeed seeds the property suite's sample values
	DefaultSeed = 20261017
	// DefaultPropertySamples is the number of random values per property
	DefaultPropertySamples = 100
	// DefaultConfigFile is looked up in the project path when --config is not set
	DefaultConfigFile = "mathcheck.yaml"
	// DefaultLogLevel is the zerolog level used for diagnostics
	DefaultLogLevel = "warn"
	// DefaultLogFormat selects the console writer
	DefaultLogFormat = "console"

	DefaultDBHost = "127.0.0.1"
	DefaultDBPort = "3306"
	DefaultDBUser = "root"
	DefaultDBName = "mathcheck"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for suites
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	".mathcheck",
}

// DefaultSuiteSuffixes are the file suffixes treated as suite files
var DefaultSuiteSuffixes = []string{
	".test.yaml",
	".test.yml",
}
