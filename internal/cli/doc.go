// Package cli implements the beacon command-line interface.
//
// Each Cobra command is a thin shell over a function that takes an
// io.Writer, so the commands can be driven from tests:
//
//	beacon run                 - full-screen page (needs a terminal)
//	beacon watch [id...]       - print widget changes as lines or JSON
//	beacon validate            - check the config and print the page tree
//	beacon configure <id>      - edit one indicator in a form
//	beacon completion <shell>  - shell completion scripts
//	beacon version             - build information
//
// # Sessions
//
// run and watch share openSession: load the config, apply --interval and
// --timeout, validate, open the log file, and build a monitor.Page. The
// session also watches the config file and hands each reload to the
// command, which applies it on the goroutine that owns the page.
//
// # Flags
//
// Global flags (--config, --no-color, --log-file, --debug) live on the root
// command. PageFlags adds the per-page overrides to run and watch.
//
// # Output
//
// Logs only ever go to a file, never the terminal. With --json, validate
// writes a JSONEnvelope and watch writes one event object per line.
package cli
