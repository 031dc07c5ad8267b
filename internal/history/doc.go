// Package history records export outcomes in a SQLite database so past
// runs stay inspectable from the CLI.
package history
