package main

import (
	"fmt"
	"os"

	"github.com/danmuck/cotyledon/internal/cli"
)

var version = "0.1.0"

func main() {
	if err := cli.RootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
