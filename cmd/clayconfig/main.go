package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-clayconfig/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "clayconfig: %v\n", err)
		os.Exit(1)
	}
}
