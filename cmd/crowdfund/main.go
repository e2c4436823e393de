package main

import (
	"os"

	"crowdfund/cmd/crowdfund/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
