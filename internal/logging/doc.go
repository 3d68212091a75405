// Package logger provides leveled logging for Kete CLI commands.
//
// The logger supports verbosity levels controlled by command-line flags.
// Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: additionally shows debug details
//
// Warnings and errors are always shown, on stderr.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("loaded %d entries", count)
//
// Commands create a logger in their PersistentPreRun and keep it in the
// cmd package for the duration of the invocation.
//
// Never log secret material: plaintexts, payloads, and keys must not be
// passed to any of these methods.
package logger
