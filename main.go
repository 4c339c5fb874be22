package main

import (
	"codeberg.org/miketth/kbswitch/pkg/cli"
	"errors"
	"github.com/xlab/closer"
	"log"
)

func main() {
	defer closer.Close()

	err := cli.Execute()
	switch {
	case errors.Is(err, cli.ErrAlreadyRunning):
		closer.Exit(1)
	case err != nil:
		log.Printf("error: %+v", err)
		closer.Exit(1)
	}
}
