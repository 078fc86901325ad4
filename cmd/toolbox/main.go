// Command toolbox serves and runs the tool catalog.
package main

import (
	"os"

	"github.com/mesh-intelligence/toolbox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
