// Package application runs the daemon after its settings are resolved: it
// lowers the process niceness, initializes the runtime framework and then
// idles, checking the framework's liveness once per interval. The idle loop
// performs no work of its own.
package application
