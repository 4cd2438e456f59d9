package main

import (
	"Recipe-Grocery-Backend/cmd/cli"
	"os"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
