// Command weft runs weft descriptions headlessly: it prints their trees,
// renders frames to PNG and serves the debug endpoints.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/weft/cmd/weft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
