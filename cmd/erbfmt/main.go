// Command erbfmt formats embedded-template (ERB-style) files in place or
// prints the formatted result to stdout (§6 CLI boundary).
package main

import (
	"fmt"
	"os"

	"github.com/ryancbahan/erb-fmt/cmd/erbfmt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
