// Package indicator implements the threshold status indicator independent of
// any rendering technology.
//
// An indicator samples the text shown by a named source widget on a fixed
// cadence, parses it as a number, classifies it against three ascending
// thresholds and exposes the resulting background color. It also keeps a
// square icon box fitted to whatever bounds the host reports.
//
// # Key Components
//
//	Thresholds  - ordered band boundaries; Classify is pure
//	Palette     - band -> color, critical and over-critical share a color
//	Poller      - owned timer handle; at most one live run per instance
//	Sizer       - square icon size with sub-unit change suppression
//	Instance    - one mounted widget: Mount, Configure, Resize, Apply, Unmount
//
// # Threading
//
// Poll goroutines only perform I/O through a Provider and hand Readings to a
// Sink. Classification and every Instance mutation happen on the caller's
// goroutine (the Bubble Tea update loop, or the watch loop), so readings and
// resize events never interleave mid-update.
//
// # Failure policy
//
// A missing source or unparsable text is not an error for the host. The tick
// simply resolves to BandNone and the default background color.
package indicator
