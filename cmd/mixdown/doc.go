// Command mixdown renders video montage projects to finished media files
// from the terminal: exports, previews, media probes, hardware capability
// checks, and export history.
package main
