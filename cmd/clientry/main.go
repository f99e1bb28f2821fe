package main

import (
	"os"

	// Builtin client factories register themselves on import.
	_ "github.com/clientry/clientry/infra/clients"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
