package main

import (
	"clubsite/internal/ingest"
	"clubsite/internal/markdown"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp"
)

// runDump prints how a post body parses, for debugging author content.
func runDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	toc := fs.Bool("toc", false, "print the table of contents instead of blocks")
	lint := fs.Bool("lint", false, "print authoring issues after the blocks")
	noColor := fs.Bool("no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "dump: expected exactly one markdown file")
		return exitConfig
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "dump:", err.Error())
		return exitFailure
	}
	src := string(ingest.Body(raw))

	pp.ColoringEnabled = !*noColor

	if *toc {
		pp.Fprintln(stdout, markdown.ExtractTOC(src))
		return exitOK
	}
	blocks := markdown.Parse(src)
	pp.Fprintln(stdout, blocks)
	if *lint {
		for _, is := range markdown.Lint(blocks) {
			fmt.Fprintln(stdout, is.String())
		}
	}
	return exitOK
}
