// Package process stops the headless browser together with its children.
package process
