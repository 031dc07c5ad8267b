// Package ffprobe provides a typed wrapper around the two ffprobe query
// forms mixdown uses: a fast scalar container-duration query and a
// structured JSON query that also inspects per-stream durations.
//
// Both queries are idempotent, side-effect-free reads. "N/A" values are
// treated as absent, matching ffprobe's convention for containers that do
// not advertise a duration.
package ffprobe
