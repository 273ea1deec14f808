package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slab-dev/slab/internal/errors"
	"github.com/slab-dev/slab/pkg/ast"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "slab.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultTemplates is the default template source directory.
	DefaultTemplates = "templates"

	// DefaultOutput is the default directory for generated code.
	DefaultOutput = "gen"

	// DefaultPackage is the default package name of generated code.
	DefaultPackage = "templates"
)

// Config represents the complete slab.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Format is the markup dialect: "html", "xhtml" or "xml".
	Format string `json:"format,omitempty"`

	// Escape contains output escaping settings.
	Escape EscapeConfig `json:"escape,omitempty"`

	// Paths contains path configuration for project directories.
	Paths PathsConfig `json:"paths,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Publish contains deployment configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// EscapeConfig contains output escaping settings. Pointers distinguish
// "unset" (escape by default) from an explicit false.
type EscapeConfig struct {
	// HTML controls escaping of buffered output expressions.
	HTML *bool `json:"html,omitempty"`

	// Attributes controls escaping of static attribute values.
	Attributes *bool `json:"attributes,omitempty"`
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Templates is the template source directory.
	Templates string `json:"templates,omitempty"`

	// Output is the directory generated Go files are written to.
	Output string `json:"output,omitempty"`

	// Package is the package name of generated files.
	Package string `json:"package,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Watch contains extra paths to watch for changes.
	Watch []string `json:"watch,omitempty"`

	// Ignore contains patterns to ignore during watch.
	Ignore []string `json:"ignore,omitempty"`

	// HotReload enables browser hot reload in development.
	HotReload bool `json:"hotReload,omitempty"`
}

// PublishConfig contains deployment settings for `slab deploy`.
type PublishConfig struct {
	// Bucket is the S3 bucket to upload to.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket's region.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Format:  "html",
		Paths: PathsConfig{
			Templates: DefaultTemplates,
			Output:    DefaultOutput,
			Package:   DefaultPackage,
		},
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
			Watch:     []string{DefaultTemplates},
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for slab.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No slab.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'slab init' to create a new project or create slab.json manually")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse slab.json: " + err.Error()).
			WithSuggestion("Check that slab.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E102").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E102").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = "html"
	}
	if c.Paths.Templates == "" {
		c.Paths.Templates = DefaultTemplates
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutput
	}
	if c.Paths.Package == "" {
		c.Paths.Package = DefaultPackage
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = []string{c.Paths.Templates}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E103").
			WithDetail("Port must be between 0 and 65535")
	}
	switch c.Format {
	case "html", "xhtml", "xml":
	default:
		return errors.New("E103").
			WithDetail("Format must be one of html, xhtml, xml; got " + c.Format)
	}
	return nil
}

// ASTFormat returns the configured markup dialect as an ast.Format.
func (c *Config) ASTFormat() ast.Format {
	switch c.Format {
	case "xhtml":
		return ast.FormatXHTML
	case "xml":
		return ast.FormatXML
	default:
		return ast.FormatHTML
	}
}

// EscapeHTML reports whether buffered output is escaped (the default).
func (c *Config) EscapeHTML() bool {
	return c.Escape.HTML == nil || *c.Escape.HTML
}

// EscapeAttributes reports whether attribute values are escaped (the
// default).
func (c *Config) EscapeAttributes() bool {
	return c.Escape.Attributes == nil || *c.Escape.Attributes
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}

// DevURL returns the URL of the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// TemplatesPath returns the absolute path to the template directory.
func (c *Config) TemplatesPath() string {
	return c.resolve(c.Paths.Templates)
}

// OutputPath returns the absolute path to the generated-code directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Paths.Output)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing slab.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E101").
				WithDetail("No slab.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'slab init' to create a new project")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
