// Command pdfpages inspects a PDF the same way the server's reader does.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetPrefix("[pdfpages]: ")
	log.SetFlags(0)

	cfg := defaultConfig()
	ctx := defineFlags(cfg, os.Stdout)
	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	subcmd.Handler()
}
