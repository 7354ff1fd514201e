package buildinfo

import (
	"fmt"
	"log"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns a single-line build summary.
func Info() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", Version, Commit, Date)
}

// Full returns the build summary including the Go runtime version.
func Full() string {
	return fmt.Sprintf("%s go=%s", Info(), runtime.Version())
}

// Log writes the build summary with the tool name.
func Log(tool string) {
	log.Printf("%s %s", tool, Info())
}
