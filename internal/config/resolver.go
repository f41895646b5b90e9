package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

const defaultFallbackRoot = "/etc"

// Resolver merges the command line, environment and config file layers over
// a set of defaults. A Resolver only reads; it never writes files.
type Resolver struct {
	product      string
	version      string
	defaults     Settings
	fallbackRoot string
	out          io.Writer
	logger       *zap.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithVersion sets the version string printed for --version.
func WithVersion(version string) Option {
	return func(r *Resolver) {
		r.version = version
	}
}

// WithOutput sets where usage and version text are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Resolver) {
		if w != nil {
			r.out = w
		}
	}
}

// WithFallbackConfigRoot replaces /etc as the last directory searched during discovery.
func WithFallbackConfigRoot(dir string) Option {
	return func(r *Resolver) {
		r.fallbackRoot = dir
	}
}

// NewResolver constructs a Resolver for product. A nil logger discards traces.
func NewResolver(product string, defaults Settings, logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		product:      product,
		defaults:     defaults,
		fallbackRoot: defaultFallbackRoot,
		out:          os.Stdout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnvPrefix returns the prefix of the environment variables read by the resolver.
func (r *Resolver) EnvPrefix() string {
	return strings.ToUpper(r.product)
}

// Resolve computes the Settings for args (program name excluded).
//
// ErrHelp and ErrVersion mean the requested text was printed and no Settings
// were produced. Any other error is fatal for the run.
func (r *Resolver) Resolve(args []string) (Settings, error) {
	flags := newFlagSet(r.product, r.version, r.out)
	cl, err := flags.parse(args)
	if err != nil {
		return Settings{}, err
	}
	for _, arg := range cl.unknown {
		r.logger.Warn("unknown argument", zap.String("arg", arg))
	}
	if cl.help {
		flags.usage()
		return Settings{}, ErrHelp
	}
	if cl.version {
		fmt.Fprintf(r.out, "%s v%s\n", r.product, r.version)
		return Settings{}, ErrVersion
	}

	traceFields := cl.layer.Fields()
	if cl.explicitConfig {
		traceFields = append([]zap.Field{zap.String("config_file", cl.configFile)}, traceFields...)
	}
	r.logger.Info("parsed command line", traceFields...)

	env, err := readEnvironment(r.EnvPrefix())
	if err != nil {
		return Settings{}, err
	}
	r.logger.Info("parsed environment", env.Fields()...)

	configFile := cl.configFile
	if !cl.explicitConfig {
		configFile = r.discover()
	}

	var file Layer
	if cl.explicitConfig || configFile != "" {
		file, err = r.loadConfigFile(configFile, cl.explicitConfig)
		if err != nil {
			return Settings{}, err
		}
	}

	settings := r.defaults
	for _, layer := range cl.precedence.order(cl.layer, env, file) {
		settings = settings.Merge(layer)
	}
	settings.ConfigFile = configFile

	if configFile == "" {
		r.logger.Info("no config file found, using defaults", settings.Fields()...)
	}
	r.logger.Info("resolved settings", append(settings.Fields(), zap.String("precedence", string(cl.precedence)))...)
	return settings, nil
}

// loadConfigFile opens and decodes the config file at path. explicit reports
// whether the path came from --config-file rather than discovery.
func (r *Resolver) loadConfigFile(path string, explicit bool) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("%w %q: %w", ErrConfigFileOpen, path, err)
		}
		return nil, fmt.Errorf("%w %q: %w", ErrDiscoveredConfigOpen, path, err)
	}
	defer f.Close()

	format := formatOf(path)
	r.logger.Info("parsing config file", zap.String("path", path), zap.String("format", string(format)))

	contents, err := decodeConfigFile(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrConfigFileParse, path, err)
	}
	for _, key := range contents.unknown {
		r.logger.Warn("unknown config file key", zap.String("path", path), zap.String("key", key))
	}
	r.logger.Info("parsed config file", append([]zap.Field{zap.String("path", path)}, contents.layer.Fields()...)...)
	return contents.layer, nil
}
