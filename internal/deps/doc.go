// Package deps reports availability of the external media tools.
package deps
