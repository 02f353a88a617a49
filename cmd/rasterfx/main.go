package main

import (
	"os"

	"github.com/InfinityTools/go-logging"

	"github.com/Fepozopo/rasterfx/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		logging.Errorf("%v\n", err)
		os.Exit(1)
	}
}
