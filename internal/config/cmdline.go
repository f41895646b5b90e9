package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"
)

// Precedence selects the order in which the source layers are merged.
type Precedence string

const (
	// PrecedenceLegacy merges defaults < command line < environment < config file.
	PrecedenceLegacy Precedence = "legacy"
	// PrecedenceStandard merges defaults < config file < environment < command line.
	PrecedenceStandard Precedence = "standard"
)

// order returns the layers from lowest to highest precedence.
func (p Precedence) order(cmdline, env, file Layer) []Layer {
	if p == PrecedenceStandard {
		return []Layer{file, env, cmdline}
	}
	return []Layer{cmdline, env, file}
}

const (
	flagHelp    = "help"
	flagVersion = "version"
)

// commandLine is the command-line layer plus the flags that steer resolution.
type commandLine struct {
	help       bool
	version    bool
	configFile string
	// explicitConfig is set when --config-file was passed, even with an empty value.
	explicitConfig bool
	precedence     Precedence
	layer          Layer
	unknown        []string
}

// flagSet wraps the kingpin application that declares every recognized flag.
type flagSet struct {
	app *kingpin.Application

	configFile    string
	configFileSet bool
	precedence    string
	dirs          map[string]*string
	dirsSet       map[string]*bool
}

func newFlagSet(product, version string, out io.Writer) *flagSet {
	app := kingpin.New(product, product+" options").
		UsageWriter(out).
		ErrorWriter(out).
		Terminate(func(int) {})
	app.Version(version)
	app.HelpFlag.Short('h')

	fs := &flagSet{
		app:     app,
		dirs:    make(map[string]*string, len(settingKeys)),
		dirsSet: make(map[string]*bool, len(settingKeys)),
	}

	app.Flag("config-file", "config file").Short('c').PlaceHolder("PATH").
		IsSetByUser(&fs.configFileSet).StringVar(&fs.configFile)

	for _, key := range settingKeys {
		value, set := new(string), new(bool)
		fs.dirs[key], fs.dirsSet[key] = value, set
		app.Flag(flagName(key), directoryHelp[key]).PlaceHolder("PATH").
			IsSetByUser(set).StringVar(value)
	}

	app.Flag("precedence", "merge order of the sources: legacy (config file > environment > flags) or standard (flags > environment > config file)").
		Default(string(PrecedenceLegacy)).EnumVar(&fs.precedence, string(PrecedenceLegacy), string(PrecedenceStandard))

	return fs
}

var directoryHelp = map[string]string{
	KeyRuntimeDir: "runtime directory",
	KeyStateDir:   "state directory",
	KeyCacheDir:   "cache directory",
	KeyLogsDir:    "logs directory",
	KeyConfigDir:  "config directory",
}

// flagName maps a setting key to its hyphenated command-line flag name.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// usage writes the usage text for every recognized flag.
func (fs *flagSet) usage() {
	fs.app.Usage(nil)
}

// parse splits args into recognized and unrecognized tokens, then hands the
// recognized ones to kingpin. Help and version are reported without parsing
// any values.
func (fs *flagSet) parse(args []string) (commandLine, error) {
	matches, unknown := partitionArgs(fs.app.Model().FlagGroupModel, args)

	cl := commandLine{unknown: unknown, layer: Layer{}}
	known := make([]string, 0, len(matches))
	for _, m := range matches {
		switch m.name {
		case flagHelp:
			cl.help = true
		case flagVersion:
			cl.version = true
		default:
			known = append(known, m.token())
		}
	}
	if cl.help || cl.version {
		return cl, nil
	}

	if _, err := fs.app.Parse(known); err != nil {
		return commandLine{}, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	cl.configFile = fs.configFile
	cl.explicitConfig = fs.configFileSet
	cl.precedence = Precedence(fs.precedence)
	for _, key := range settingKeys {
		if *fs.dirsSet[key] {
			cl.layer[key] = *fs.dirs[key]
		}
	}
	return cl, nil
}

// argMatch is one recognized flag occurrence and the value it consumed.
type argMatch struct {
	name     string
	value    string
	hasValue bool
}

// token renders the match in the attached --name=value form. kingpin reads a
// separate token starting with '@' as an argument file, so values are never
// handed over on their own.
func (m argMatch) token() string {
	if !m.hasValue {
		return "--" + m.name
	}
	return "--" + m.name + "=" + m.value
}

// looksLikeFlag reports whether arg would be read as a flag rather than a value.
func looksLikeFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// partitionArgs walks args and separates occurrences of flags declared in
// model from everything else. Unknown flags, positional arguments and every
// token after "--" are returned individually as unknown. Hidden flags are
// treated as unknown. A value flag followed by another flag gets no value.
func partitionArgs(model *kingpin.FlagGroupModel, args []string) ([]argMatch, []string) {
	byLong := make(map[string]*kingpin.FlagModel)
	byShort := make(map[rune]*kingpin.FlagModel)
	if model != nil {
		for _, flag := range model.Flags {
			if flag.Hidden {
				continue
			}
			byLong[flag.Name] = flag
			if flag.Short != 0 {
				byShort[flag.Short] = flag
			}
		}
	}

	var (
		matches []argMatch
		unknown []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			unknown = append(unknown, args[i+1:]...)
			return matches, unknown

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			flag, ok := byLong[name]
			if !ok {
				unknown = append(unknown, arg)
				continue
			}
			m := argMatch{name: flag.Name, value: value, hasValue: hasValue}
			if !flag.IsBoolFlag() && !hasValue && i+1 < len(args) && !looksLikeFlag(args[i+1]) {
				i++
				m.value, m.hasValue = args[i], true
			}
			matches = append(matches, m)

		case looksLikeFlag(arg):
			flag, ok := byShort[rune(arg[1])]
			if !ok || (flag.IsBoolFlag() && len(arg) > 2) {
				unknown = append(unknown, arg)
				continue
			}
			m := argMatch{name: flag.Name}
			switch {
			case flag.IsBoolFlag():
			case len(arg) > 2:
				m.value, m.hasValue = arg[2:], true
			case i+1 < len(args) && !looksLikeFlag(args[i+1]):
				i++
				m.value, m.hasValue = args[i], true
			}
			matches = append(matches, m)

		default:
			unknown = append(unknown, arg)
		}
	}
	return matches, unknown
}
