// Package version holds build information, overridden at link time with
// -ldflags "-X github.com/birmacher/prompt-guide/version.Version=..."
package version

// Version of the prompt-guide CLI
var Version = "0.1.0"
