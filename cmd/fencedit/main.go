// cmd/fencedit/main.go
package main

import (
	"os"

	"github.com/bethropolis/fencedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
