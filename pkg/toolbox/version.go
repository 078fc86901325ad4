// Package toolbox carries build-level constants shared by the CLI and server.
package toolbox

// Version is the toolbox release version.
const Version = "0.3.0"

// ModulePath is the Go module path of the toolbox project.
const ModulePath = "github.com/mesh-intelligence/toolbox"
