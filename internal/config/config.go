// internal/config/config.go
//
// This package handles configuration and the .poolpermit directory
// structure. Every project directory the wizard runs from gets a
// .poolpermit/ folder holding config, logs, and exported artifacts.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// PermitDir is the name of the directory created in the working directory.
	PermitDir = ".poolpermit"

	defaultEndpoint       = "https://permit-validator.example.com/api/validate"
	defaultAgentID        = "pool-permit-compliance-agent"
	defaultSubmitTimeout  = 60
	defaultLogFile        = "wizard.log"
	endpointEnvVar        = "POOLPERMIT_VALIDATOR_URL"
	defaultSettingsHeader = `# poolpermit configuration
version: 1

validator:
  # Endpoint of the external compliance service.
  endpoint: ` + defaultEndpoint + `
  # Agent identifier sent with every validation request.
  agent_id: ` + defaultAgentID + `
  # How long to wait for a validation round trip, in seconds.
  submit_timeout_seconds: 60
`
)

// ValidatorSettings configures the external compliance service call.
type ValidatorSettings struct {
	Endpoint             string `yaml:"endpoint"`
	AgentID              string `yaml:"agent_id"`
	SubmitTimeoutSeconds int    `yaml:"submit_timeout_seconds"`
}

// Settings models .poolpermit/config.yaml.
type Settings struct {
	Version   int               `yaml:"version"`
	Validator ValidatorSettings `yaml:"validator"`
}

// Config holds the runtime configuration for the wizard.
type Config struct {
	// ProjectDir is the directory the user ran `poolpermit` from.
	ProjectDir string

	// PermitProjectDir is ProjectDir/.poolpermit.
	PermitProjectDir string

	Settings Settings
}

// InitPermitDir creates the .poolpermit directory structure and a default
// config file if none exists. Called on startup before the TUI runs.
func InitPermitDir(projectDir string) error {
	permitDir := filepath.Join(projectDir, PermitDir)
	dirs := []string{
		filepath.Join(permitDir, "logs"),
		filepath.Join(permitDir, "exports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureSettingsFile(filepath.Join(permitDir, "config.yaml"))
}

// NewConfig loads configuration for the given project directory, applying
// defaults for anything the config file leaves unset. The
// POOLPERMIT_VALIDATOR_URL environment variable overrides the endpoint.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		PermitProjectDir: filepath.Join(projectDir, PermitDir),
		Settings:         defaultSettings(),
	}
	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}
	if override := strings.TrimSpace(os.Getenv(endpointEnvVar)); override != "" {
		cfg.Settings.Validator.Endpoint = override
	}
	if err := cfg.Settings.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.PermitProjectDir, "logs")
}

// LogPath returns the wizard log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), defaultLogFile)
}

// ExportsDir returns where downloaded artifacts are saved.
func (c *Config) ExportsDir() string {
	return filepath.Join(c.PermitProjectDir, "exports")
}

// SettingsPath returns the on-disk location of the config file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.PermitProjectDir, "config.yaml")
}

// ValidatorEndpoint returns the compliance service endpoint.
func (c *Config) ValidatorEndpoint() string {
	return c.Settings.Validator.Endpoint
}

// AgentID returns the agent identifier sent with validation requests.
func (c *Config) AgentID() string {
	return c.Settings.Validator.AgentID
}

// SubmitTimeout returns the validation round-trip deadline.
func (c *Config) SubmitTimeout() time.Duration {
	return time.Duration(c.Settings.Validator.SubmitTimeoutSeconds) * time.Second
}

func (c *Config) loadSettings() error {
	path := c.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize()
	c.Settings = parsed
	return nil
}

func defaultSettings() Settings {
	return Settings{
		Version: 1,
		Validator: ValidatorSettings{
			Endpoint:             defaultEndpoint,
			AgentID:              defaultAgentID,
			SubmitTimeoutSeconds: defaultSubmitTimeout,
		},
	}
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if strings.TrimSpace(s.Validator.Endpoint) == "" {
		s.Validator.Endpoint = defaultEndpoint
	}
	if strings.TrimSpace(s.Validator.AgentID) == "" {
		s.Validator.AgentID = defaultAgentID
	}
	if s.Validator.SubmitTimeoutSeconds <= 0 {
		s.Validator.SubmitTimeoutSeconds = defaultSubmitTimeout
	}
}

func (s *Settings) normalize() {
	s.Validator.Endpoint = strings.TrimSpace(s.Validator.Endpoint)
	s.Validator.AgentID = strings.TrimSpace(s.Validator.AgentID)
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	parsed, err := url.Parse(s.Validator.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("validator.endpoint %q is not a valid URL", s.Validator.Endpoint)
	}
	if s.Validator.AgentID == "" {
		return fmt.Errorf("validator.agent_id is required")
	}
	return nil
}

func ensureSettingsFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultSettingsHeader), 0o644)
}
