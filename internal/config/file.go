package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout of mathcheck.yaml. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	TestPath        string   `yaml:"test_path"`
	Processors      int      `yaml:"processors"`
	Seed            *uint64  `yaml:"seed"`
	PropertySamples *int     `yaml:"property_samples"`
	PathsToIgnore   []string `yaml:"paths_to_ignore"`
	SuiteSuffixes   []string `yaml:"suite_suffixes"`
	MetricsFile     string   `yaml:"metrics_file"`
	Output          struct {
		Dir  string `yaml:"dir"`
		File string `yaml:"file"`
	} `yaml:"output"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Archive  bool   `yaml:"archive"`
	} `yaml:"database"`
}

// LoadFile overlays settings from a YAML file. A missing file is not an
// error unless required is set.
func (c *Config) LoadFile(path string, required bool) error {
	if path == "" {
		path = filepath.Join(c.ProjectPath, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fc.TestPath != "" {
		c.TestPath = fc.TestPath
	}
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if fc.PropertySamples != nil {
		c.PropertySamples = *fc.PropertySamples
	}
	if len(fc.PathsToIgnore) > 0 {
		c.PathsToIgnore = fc.PathsToIgnore
	}
	if len(fc.SuiteSuffixes) > 0 {
		c.SuiteSuffixes = fc.SuiteSuffixes
	}
	setString(&c.MetricsFile, fc.MetricsFile)
	setString(&c.OutputJSONDir, fc.Output.Dir)
	setString(&c.OutputJSONFile, fc.Output.File)
	setString(&c.LogLevel, fc.Log.Level)
	setString(&c.LogFormat, fc.Log.Format)
	setString(&c.Database.Host, fc.Database.Host)
	setString(&c.Database.Port, fc.Database.Port)
	setString(&c.Database.User, fc.Database.User)
	setString(&c.Database.Password, fc.Database.Password)
	setString(&c.Database.Name, fc.Database.Name)
	if fc.Database.Archive {
		c.Database.Archive = true
	}
	return nil
}

// LoadEnv loads the project's .env file (if any) into the process
// environment and overlays MATHCHECK_* and DB_* variables.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	setString(&c.TestPath, os.Getenv("MATHCHECK_TEST_PATH"))
	setString(&c.MetricsFile, os.Getenv("MATHCHECK_METRICS_FILE"))
	setString(&c.LogLevel, os.Getenv("MATHCHECK_LOG_LEVEL"))
	setString(&c.LogFormat, os.Getenv("MATHCHECK_LOG_FORMAT"))
	setString(&c.Database.Host, os.Getenv("DB_HOST"))
	setString(&c.Database.Port, os.Getenv("DB_PORT"))
	setString(&c.Database.User, os.Getenv("DB_USERNAME"))
	setString(&c.Database.Password, os.Getenv("DB_PASSWORD"))
	setString(&c.Database.Name, os.Getenv("DB_DATABASE"))

	if v := os.Getenv("MATHCHECK_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MATHCHECK_PROCESSORS %q: %w", v, err)
		}
		c.Processors = n
	}
	if v := os.Getenv("MATHCHECK_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MATHCHECK_SEED %q: %w", v, err)
		}
		c.Seed = n
	}
	if v := os.Getenv("MATHCHECK_ARCHIVE"); v != "" {
		archive, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MATHCHECK_ARCHIVE %q: %w", v, err)
		}
		c.Database.Archive = archive
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
