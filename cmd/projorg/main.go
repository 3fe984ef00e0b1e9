package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/idilsaglam/projorg/internal/cli"
)

func main() {
	// Optional .env next to the binary's working directory.
	_ = godotenv.Load()

	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "theme name: default, neon or mono")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Theme:   *theme,
		NoColor: *noColor,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
