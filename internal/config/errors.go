package config

import "errors"

var (
	// ErrHelp is returned when usage was requested and printed. Callers should exit successfully.
	ErrHelp = errors.New("help requested")
	// ErrVersion is returned when the version was requested and printed. Callers should exit successfully.
	ErrVersion = errors.New("version requested")
	// ErrInvalidArguments is returned when a recognized flag is malformed, such as a value flag without a value.
	ErrInvalidArguments = errors.New("invalid command-line arguments")
	// ErrConfigFileOpen is returned when the file named by --config-file cannot be opened.
	ErrConfigFileOpen = errors.New("cannot open config file")
	// ErrDiscoveredConfigOpen is returned when a discovered config file passed the readability
	// check but could not be opened afterwards.
	ErrDiscoveredConfigOpen = errors.New("cannot open discovered config file")
	// ErrConfigFileParse is returned when a config file is malformed or holds a non-string setting.
	ErrConfigFileParse = errors.New("cannot parse config file")
)
