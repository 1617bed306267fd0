package main

import (
	"clubsite/internal/build"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
)

func runBuild(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "site.yaml", "site config file")
	force := fs.Bool("force", false, "render even when nothing changed")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	cfg, code := loadConfig(*configPath, stderr)
	if code != exitOK {
		return code
	}

	logger := log.New(stderr, "", log.LstdFlags)
	b := &build.Builder{Cfg: cfg, Force: *force}
	res, err := b.Run(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "build error:", err.Error())
		return exitFailure
	}
	for _, w := range res.Warnings {
		logger.Printf("[warn] %s", w)
	}
	fmt.Fprintf(stdout, "[build] %s -> %s\n", res.Summary(), cfg.Build.PublicDir)
	return exitOK
}
