// Package logging configures structured logging for recdata and carries
// the validation-warning events emitted by the dataset builder.
//
// The core data layer never owns a log transport: it emits structured
// events through a zerolog.Logger that callers can replace.  The default
// logger writes JSON to stderr; Setup switches level and console rendering
// for command-line use.
package logging
