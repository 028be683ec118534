package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GenerativeKeyEnvVars are the accepted names for the generative API credential, in priority order.
var GenerativeKeyEnvVars = []string{"GENAI_API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY"}

// Config holds the fitroom configuration. It is built once at startup and never mutated.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Search     SearchConfig     `yaml:"search"`
	Generative GenerativeConfig `yaml:"generative"`
	CORS       CORSConfig       `yaml:"cors"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec" validate:"gt=0"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec" validate:"gt=0"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec" validate:"gt=0"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes" validate:"gt=0"`
}

// SearchConfig holds the product-search upstream settings.
// An empty APIKey is allowed: searches then fail with a missing-credential error.
type SearchConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	Country    string `yaml:"country" validate:"required"`
	TLD        string `yaml:"tld" validate:"required"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gt=0"`
}

// GenerativeConfig holds the generative image model settings. BaseURL is checked when
// the client is built, not here, so a bad value surfaces as an unavailable client.
type GenerativeConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	APIVersion string `yaml:"api_version"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gt=0"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec" validate:"gte=0"`
}

// AuthConfig holds API authentication settings. Empty APIKeys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SearchTimeout returns the search upstream timeout.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSec) * time.Second
}

// GenerativeTimeout returns the generative upstream timeout.
func (c *Config) GenerativeTimeout() time.Duration {
	return time.Duration(c.Generative.TimeoutSec) * time.Second
}

// Load reads .env (if present) and the YAML file for the environment (local, dev, prod).
func Load(env string) (Config, error) {
	loadDotEnv()

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 4000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// must outlive generative.timeout_sec
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 25 << 20
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "https://api.scraperapi.com"
	}
	if c.Search.Country == "" {
		c.Search.Country = "IN"
	}
	if c.Search.TLD == "" {
		c.Search.TLD = "in"
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 30
	}
	if c.Generative.APIKey == "" {
		c.Generative.APIKey = firstEnv(GenerativeKeyEnvVars...)
	}
	if c.Generative.BaseURL == "" {
		c.Generative.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Generative.APIVersion == "" {
		c.Generative.APIVersion = "v1beta"
	}
	if c.Generative.Model == "" {
		c.Generative.Model = "gemini-2.5-flash-image-preview"
	}
	if c.Generative.TimeoutSec <= 0 {
		c.Generative.TimeoutSec = 90
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return describeValidation(err)
	}
	if c.HTTP.WriteTimeoutSec <= c.Generative.TimeoutSec {
		return fmt.Errorf(
			"http.write_timeout_sec (%d) must exceed generative.timeout_sec (%d)",
			c.HTTP.WriteTimeoutSec, c.Generative.TimeoutSec,
		)
	}
	return nil
}

// describeValidation turns validator errors into "http.port failed min" messages.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".") // drop the root "Config."
		msgs = append(msgs, fmt.Sprintf("%s failed %s", path, fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// loadDotEnv loads .env from the working directory. Existing variables win; a missing file is fine.
func loadDotEnv() {
	if fileExists(".env") {
		_ = godotenv.Load(".env")
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
