package main

import (
	"fmt"
	"os"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	root := newRootCmd()
	root.SetArgs(args[1:])
	return root.Execute()
}
