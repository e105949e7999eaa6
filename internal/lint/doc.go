// Package lint checks the site sources before they are published.
//
// Each rule reads files under the configured root and records what it finds
// in a Report. Errors fail the run; warnings are printed and ignored.
package lint
