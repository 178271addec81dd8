package main

import (
	"github.com/probelab/ospect/pkg/cli"
)

func main() {
	cli.Execute()
}
