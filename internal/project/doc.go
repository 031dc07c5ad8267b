// Package project defines the timeline data model: ordered video clips,
// layered audio tracks with volume/mute/solo, and mixing settings, plus the
// whole-file JSON persistence for .mixproj documents.
//
// Derived values (active tracks, total video duration) are computed, never
// stored. Clip and track ordering is preserved end-to-end into the filter
// graph tag numbering.
package project
