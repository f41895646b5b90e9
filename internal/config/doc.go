// Package config resolves the daemon's directory settings from command-line
// flags, environment variables and an optional config file layered over
// compiled-in defaults. Each source is read into its own Layer and the layers
// are merged into an immutable Settings value.
//
// The default merge order is the inherited one: defaults < command line <
// environment < config file, so a config file overrides the environment and
// both override flags. Pass --precedence=standard for the conventional
// defaults < config file < environment < command line order.
//
// When --config-file is not given the file is discovered following the XDG
// Base Directory layout, see Resolver.Candidates.
package config
