// cmd/veritas/main.go
package main

import (
	cmd "github.com/probeworks/veritas/internal/cli"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Seams for testing the wiring without executing the CLI.
var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the veritas CLI application by delegating to the cobra root
// command defined in the cli package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
