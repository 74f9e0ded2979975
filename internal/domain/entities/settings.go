package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir           = ".packman"
	DefaultPackageDir        = "releasePackage"
	DefaultIgnoreFile        = ".packIgnore"
	DefaultVCSBinary         = "svn"
	DefaultSourceDir         = "src"
	DefaultDescriptorInclude = `(?i)^ecbeing\..*\.(vb|cs)proj$`

	// ConfigEnvVar points at a configuration file, overriding auto-detection.
	ConfigEnvVar = "PACKMAN_CONFIG"
)

// DefaultExcludeKeywords skips template projects kept next to real ones.
var DefaultExcludeKeywords = []string{"[雛形]"} //nolint:gochecknoglobals // documented default

// Settings is the tool-level configuration. The project being released is
// stored separately, in the document store.
type Settings struct {
	DataDir        string                  `yaml:"data_dir"     hcl:"data_dir,optional"`    // Document store directory
	PackageDir     string                  `yaml:"package_dir"  hcl:"package_dir,optional"` // Release package output directory
	IgnoreFile     string                  `yaml:"ignore_file"  hcl:"ignore_file,optional"` // Default ignore list to import
	Log            *LogSettings            `yaml:"log"            hcl:"log,block"`
	VCS            *VCSSettings            `yaml:"vcs"            hcl:"vcs,block"`
	Descriptors    *DescriptorSettings     `yaml:"descriptors"    hcl:"descriptors,block"`
	Classification *ClassificationSettings `yaml:"classification" hcl:"classification,block"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `yaml:"level" hcl:"level,optional"` // logrus level, "info" by default
	Dir   string `yaml:"dir"   hcl:"dir,optional"`   // When set, every run also logs to a timestamped file here
}

// VCSSettings controls the version-control client.
type VCSSettings struct {
	Binary string `yaml:"binary" hcl:"binary,optional"` // svn executable
}

// DescriptorSettings controls the project descriptor scan.
type DescriptorSettings struct {
	SourceDir       string   `yaml:"source_dir"       hcl:"source_dir,optional"`       // Relative to the project local path
	Include         string   `yaml:"include"          hcl:"include,optional"`          // Regexp matched against descriptor basenames
	ExcludeKeywords []string `yaml:"exclude_keywords" hcl:"exclude_keywords,optional"` // Paths containing any of these are skipped
}

// ClassificationSettings controls the path classifier.
type ClassificationSettings struct {
	ProtectedSchemaFiles []string `yaml:"protected_schema_files" hcl:"protected_schema_files,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	settings := &Settings{}
	applyDefaults(settings)
	return settings
}

// LoadSettings loads .env, then the configuration file found by
// FindConfigFile, falling back to DefaultSettings when there is none.
func LoadSettings() (*Settings, error) {
	_ = godotenv.Load()

	path, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return DefaultSettings(), nil
	}
	return NewSettings(path)
}

// NewSettings reads and parses a YAML or HCL configuration file, expanding
// environment variables and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if filepath.Ext(path) == ".hcl" {
		if decodeErr := decodeHCL(data, path, &settings); decodeErr != nil {
			return nil, decodeErr
		}
	} else if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	expandEnv(&settings)
	applyDefaults(&settings)

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// PACKMAN_CONFIG takes precedence when set.
func FindConfigFile() (string, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s points to a missing file: %w", ConfigEnvVar, err)
		}
		return path, nil
	}

	locations := []string{".", ".config", "configs"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".packman.yaml",
		".packman.yml",
		"packman.yaml",
		"packman.yml",
		"packman.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// decodeHCL decodes an HCL configuration. Environment variables are
// available to expressions as env.NAME.
func decodeHCL(data []byte, path string, settings *Settings) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	if diags = gohcl.DecodeBody(file.Body, envEvalContext(), settings); diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	return nil
}

func envEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func expandEnv(settings *Settings) {
	settings.DataDir = resolveEnv(settings.DataDir)
	settings.PackageDir = resolveEnv(settings.PackageDir)
	settings.IgnoreFile = resolveEnv(settings.IgnoreFile)
	if settings.Log != nil {
		settings.Log.Dir = resolveEnv(settings.Log.Dir)
	}
	if settings.VCS != nil {
		settings.VCS.Binary = resolveEnv(settings.VCS.Binary)
	}
	if settings.Descriptors != nil {
		settings.Descriptors.SourceDir = resolveEnv(settings.Descriptors.SourceDir)
	}
}

// resolveEnv expands ${VAR} references, warning about unset variables.
func resolveEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func applyDefaults(settings *Settings) {
	if settings.DataDir == "" {
		settings.DataDir = DefaultDataDir
	}
	if settings.PackageDir == "" {
		settings.PackageDir = DefaultPackageDir
	}
	if settings.IgnoreFile == "" {
		settings.IgnoreFile = DefaultIgnoreFile
	}
	if settings.Log == nil {
		settings.Log = &LogSettings{}
	}
	if settings.Log.Level == "" {
		settings.Log.Level = "info"
	}
	if settings.VCS == nil {
		settings.VCS = &VCSSettings{}
	}
	if settings.VCS.Binary == "" {
		settings.VCS.Binary = DefaultVCSBinary
	}
	if settings.Descriptors == nil {
		settings.Descriptors = &DescriptorSettings{}
	}
	if settings.Descriptors.SourceDir == "" {
		settings.Descriptors.SourceDir = DefaultSourceDir
	}
	if settings.Descriptors.Include == "" {
		settings.Descriptors.Include = DefaultDescriptorInclude
	}
	if settings.Descriptors.ExcludeKeywords == nil {
		settings.Descriptors.ExcludeKeywords = DefaultExcludeKeywords
	}
	if settings.Classification == nil {
		settings.Classification = &ClassificationSettings{}
	}
	if settings.Classification.ProtectedSchemaFiles == nil {
		settings.Classification.ProtectedSchemaFiles = DefaultProtectedSchemaFiles
	}
}

// validate checks the values that cannot be defaulted.
func validate(settings *Settings) error {
	if _, err := logger.ParseLevel(settings.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := regexp.Compile(settings.Descriptors.Include); err != nil {
		return fmt.Errorf("descriptors.include is not a valid regular expression: %w", err)
	}
	return nil
}
