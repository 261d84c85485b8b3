package main

import (
	"github.com/rubiojr/intarr/cmd"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
