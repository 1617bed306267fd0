// Command clubsite builds and serves the club website.
//
//	clubsite build [-config site.yaml] [-force]
//	clubsite serve [-config site.yaml] [-addr :8080]
//	clubsite dump  [-toc] [-lint] [-no-color] <file.md>
package main

import (
	"clubsite/internal/domain/config"
	domainerr "clubsite/internal/domain/errors"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitConfig
	}
	switch args[0] {
	case "build":
		return runBuild(ctx, args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stderr)
	case "dump":
		return runDump(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitConfig
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  clubsite build [-config site.yaml] [-force]")
	fmt.Fprintln(w, "  clubsite serve [-config site.yaml] [-addr :8080]")
	fmt.Fprintln(w, "  clubsite dump  [-toc] [-lint] [-no-color] <file.md>")
}

// loadConfig returns exitConfig for a broken or invalid file.
func loadConfig(path string, stderr io.Writer) (config.Config, int) {
	cfg, err := config.LoadOrDefault(path)
	if err == nil {
		return cfg, exitOK
	}
	var ve domainerr.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintf(stderr, "invalid config %s:\n", path)
		for _, fe := range ve.Items {
			fmt.Fprintf(stderr, "  %s\n", fe)
		}
		return cfg, exitConfig
	}
	fmt.Fprintf(stderr, "load config %s: %v\n", path, err)
	return cfg, exitConfig
}
