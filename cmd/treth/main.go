package main

import (
	"github.com/jcaldw/trickortreth/internal/cli"
)

func main() {
	cli.Execute()
}
