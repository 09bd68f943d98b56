package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arloliu/olsfit/internal/cli"
)

func main() {
	root := cli.NewRootCmd(cli.Options{Output: os.Stdout, LogOutput: os.Stderr})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
