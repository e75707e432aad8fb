package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-formblock/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.New(version).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
