package main

import (
	"os"

	"github.com/zamvr/vrcswitch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
