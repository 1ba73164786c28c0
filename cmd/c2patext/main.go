package main

import (
	"os"

	"xdao.co/c2patext/cmd/c2patext/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
