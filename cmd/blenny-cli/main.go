package main

import (
	"github.com/mwhitaker/blenny/cmd/blenny-cli/cmd"
)

func main() {
	cmd.Execute()
}
