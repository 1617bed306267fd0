package main

import (
	"clubsite/internal/serve"
	"context"
	"flag"
	"fmt"
	"io"
)

func runServe(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "site.yaml", "site config file")
	addr := fs.String("addr", "", "listen address (default from config)")
	if err := fs.Parse(args); err != nil {
		return exitConfig
	}

	cfg, code := loadConfig(*configPath, stderr)
	if code != exitOK {
		return code
	}
	if *addr == "" {
		*addr = cfg.Serve.Addr
	}

	s, err := serve.New(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "serve init error:", err.Error())
		return exitFailure
	}
	defer s.Close()

	if err := s.ListenAndServe(ctx, *addr); err != nil {
		fmt.Fprintln(stderr, "serve error:", err.Error())
		return exitFailure
	}
	return exitOK
}
