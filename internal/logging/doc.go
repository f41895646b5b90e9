// Package logging builds the zap logger used for the daemon's diagnostic
// traces. Everything goes to stderr; stdout is reserved for usage and version text.
package logging
