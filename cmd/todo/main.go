package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nhle/todo/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
