// Command riftrunner plays the rift defense simulation from the console,
// runs autopilot batches and reports the run journal.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("riftrunner failed", "error", err)
		os.Exit(1)
	}
}
