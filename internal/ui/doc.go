// Package ui adapts command lifecycle events into console-friendly output.
package ui
