package main

import (
	"os"

	"github.com/nonibytes/mangiato/internal/cli"

	// Pure-Go driver behind --sqlite-driver=sqlite.
	_ "modernc.org/sqlite"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
