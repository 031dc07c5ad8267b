// Package export turns a project timeline into a transcoding engine
// invocation and supervises it.
//
// BuildArgs is the command synthesizer: a pure mapping from project,
// output path, and options to the engine's argument vector. Exporter is
// the supervisor: it spawns the engine, converts its machine-readable
// progress stream into 0-100 events, honors context cancellation, and
// removes partial output files from cancelled runs. Preview reuses the
// synthesizer with a forced ultrafast preset and a clip limit.
//
// No retries anywhere: every failure is reported once for the caller to
// decide on re-attempt.
package export
