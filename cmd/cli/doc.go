// Package cli assembles the mirrors command-line application: configuration
// loading, logger construction, and the mirror-create and mirror-sync commands.
package cli
