package main

import (
	"fmt"
	"os"

	"github.com/kewenyu/DBmbk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dbmbk: %v\n", err)
		os.Exit(1)
	}
}
