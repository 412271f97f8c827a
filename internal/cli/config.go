package cli

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/generator"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/parser"
	"github.com/toyz/autoiface/internal/templates"
	"github.com/toyz/autoiface/internal/utils"
)

// ConfigFileName is the project configuration file looked up in the working directory
const ConfigFileName = ".autoiface.yaml"

// Defaults for the Java output
const (
	DefaultJavaAccessor = "getDecoratedObject"
	DefaultJavaOut      = "generated"
)

// GoConfig holds Go renderer settings
type GoConfig struct {
	FilePrefix string `yaml:"filePrefix,omitempty"`
	Accessor   string `yaml:"accessor,omitempty"`
}

// JavaConfig holds Java renderer settings
type JavaConfig struct {
	Accessor string `yaml:"accessor,omitempty"`
	Indent   string `yaml:"indent,omitempty"`
	Out      string `yaml:"out,omitempty"`
}

// Config holds the configuration for a generation pass
type Config struct {
	Jobs     int            `yaml:"jobs,omitempty"`
	Verbose  bool           `yaml:"verbose,omitempty"`
	Quiet    bool           `yaml:"quiet,omitempty"`
	Tests    bool           `yaml:"tests,omitempty"`
	Exclude  []string       `yaml:"exclude,omitempty"`
	Defaults models.Options `yaml:"defaults,omitempty"`
	Go       GoConfig       `yaml:"go,omitempty"`
	Java     JavaConfig     `yaml:"java,omitempty"`

	// DryRun is only ever set from the command line
	DryRun bool `yaml:"-"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Go: GoConfig{
			FilePrefix: parser.DefaultGeneratedPrefix,
			Accessor:   generator.DefaultAccessor,
		},
		Java: JavaConfig{
			Accessor: DefaultJavaAccessor,
			Indent:   templates.DefaultJavaIndent,
			Out:      DefaultJavaOut,
		},
	}
}

// LoadConfig returns the built-in defaults merged with a config file. An
// empty path looks for .autoiface.yaml in dir, which may be absent; an
// explicit path must exist.
func LoadConfig(dir, path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	var file Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapConfigurationError(path, "decode", err)
	}

	if err := mergo.Merge(config, file, mergo.WithOverride); err != nil {
		return nil, errors.WrapConfigurationError(path, "merge", err)
	}
	return config, nil
}

// ApplyFlags overrides the configuration with the flags set on the command line
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("jobs") {
		if c.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	if flags.Changed("verbose") {
		if c.Verbose, err = flags.GetBool("verbose"); err != nil {
			return err
		}
	}
	if flags.Changed("quiet") {
		if c.Quiet, err = flags.GetBool("quiet"); err != nil {
			return err
		}
	}
	if flags.Changed("tests") {
		if c.Tests, err = flags.GetBool("tests"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		if c.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return err
		}
	}
	if flags.Changed("dry-run") {
		if c.DryRun, err = flags.GetBool("dry-run"); err != nil {
			return err
		}
	}
	if flags.Changed("out") {
		if c.Java.Out, err = flags.GetString("out"); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the merged configuration
func (c *Config) Validate() error {
	errs := errors.NewMultipleErrors()
	check := func(err error) {
		if err != nil {
			errs.Add(errors.Wrap(errors.ConfigurationErrorCode, "invalid configuration", err))
		}
	}

	check(utils.NonNegative("jobs")(c.Jobs))
	check(utils.NewValidatorChain(utils.NotEmpty("go.filePrefix")).Validate(c.Go.FilePrefix))
	check(utils.IsValidIdentifier("go.accessor")(c.Go.Accessor))
	check(utils.IsValidIdentifier("java.accessor")(c.Java.Accessor))
	check(utils.NewValidatorChain(utils.NotEmpty("java.indent"), utils.Blank("java.indent")).Validate(c.Java.Indent))
	check(utils.NotEmpty("java.out")(c.Java.Out))

	d := c.Defaults
	if d.Name != "" || d.Pkg != "" || d.DecoratorName != "" {
		errs.Add(errors.New(errors.ConfigurationErrorCode, "defaults may only set includeInherited and createDecorator"))
	}
	if c.Verbose && c.Quiet {
		errs.Add(errors.New(errors.ConfigurationErrorCode, "verbose and quiet are mutually exclusive"))
	}

	return errs.ErrorOrNil()
}

// DiagnosticLevel maps the verbosity settings onto a diagnostic level
func (c *Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
