// Command ecstree mounts scene documents onto an entity/component store and
// prints the realized tree.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/ecstree/cmd/ecstree/cmd"
	"github.com/go-drift/ecstree/pkg/errors"
)

func main() {
	defer errors.RecoverWithCallback("main", func(any) { os.Exit(2) })

	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
