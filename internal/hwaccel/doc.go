// Package hwaccel resolves which hardware encoder family the host can use.
//
// Candidate families (nvidia, intel, amd, vaapi) are tried in a fixed
// priority order: a family is selected when its encoder appears in the
// engine's advertised encoder list and a short synthetic encode succeeds.
// The result is memoized once per process lifetime; "no hardware
// acceleration" is the normal fallback state, never an error.
package hwaccel
