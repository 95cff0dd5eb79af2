package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/echa/config"
)

const (
	appName   = "formschema-cli"
	envPrefix = "FORMSCHEMA"
)

func init() {
	config.SetDefault("schema.path", "schema")
	config.SetDefault("schema.format", formatAuto)
	config.SetDefault("validation.maxdepth", 32)
	config.SetDefault("messages.locale", "en")
	config.SetDefault("messages.path", "")
}

// options holds the parsed command line. Empty values fall back to the
// configuration.
type options struct {
	configFile  string
	schemaPath  string
	format      string
	model       string
	jsonPath    string
	locale      string
	messages    string
	maxDepth    int
	export      bool
	interactive bool
	vdebug      bool
	vtrace      bool
	record      string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -model <name> [flags] [record.json]\n\n", appName)
		fmt.Fprintln(stderr, "Validates a JSON record read from a file or stdin.")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}
	flags.StringVar(&opts.configFile, "config", "", "read config from `file`")
	flags.StringVar(&opts.schemaPath, "schema", "", "manifest directory or file, OpenAPI file or URL")
	flags.StringVar(&opts.format, "format", "", "schema format: auto, manifest or openapi")
	flags.StringVar(&opts.model, "model", "", "model `name` to validate against")
	flags.StringVar(&opts.jsonPath, "path", "", "gjson `path` selecting the record inside the input")
	flags.StringVar(&opts.locale, "locale", "", "message locale or Accept-Language value")
	flags.StringVar(&opts.messages, "messages", "", "directory with message catalogs")
	flags.IntVar(&opts.maxDepth, "maxdepth", 0, "nested relation validation depth")
	flags.BoolVar(&opts.export, "export", false, "print the model as a JSON Schema document")
	flags.BoolVar(&opts.interactive, "interactive", false, "enter the record field by field")
	flags.BoolVar(&opts.vdebug, "v", false, "debug mode")
	flags.BoolVar(&opts.vtrace, "vv", false, "trace mode")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one record file, got %d", flags.NArg())
	}
	opts.record = flags.Arg(0)
	return opts, nil
}

func loadConfig(opts *options) error {
	config.SetEnvPrefix(envPrefix)
	if opts.configFile == "" {
		return nil
	}
	config.SetConfigName(opts.configFile)
	realconf := config.ConfigName()
	if _, err := os.Stat(realconf); err != nil {
		return fmt.Errorf("config file %q: %w", realconf, err)
	}
	if err := config.ReadConfigFile(); err != nil {
		return fmt.Errorf("reading config file %q: %w", realconf, err)
	}
	log.Infof("Using config file %s", realconf)
	return nil
}

// resolve fills empty options from the configuration.
func (o *options) resolve() {
	if o.schemaPath == "" {
		o.schemaPath = config.GetString("schema.path")
	}
	if o.format == "" {
		o.format = config.GetString("schema.format")
	}
	if o.locale == "" {
		o.locale = config.GetString("messages.locale")
	}
	if o.messages == "" {
		o.messages = config.GetString("messages.path")
	}
	if o.maxDepth <= 0 {
		o.maxDepth = config.GetInt("validation.maxdepth")
	}
}
