package cli

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/Fepozopo/rasterfx/pkg/cli.Version=...".
var Version = "0.1.0"

const ToolName = "rasterfx"
