//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sentinel/app"
	"sentinel/hal"
)

func main() {
	var headless hal.HeadlessConfig
	var opts hal.HostOptions
	var cfg app.Config
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Step rate in headless mode.")
	flag.Uint64Var(&headless.Steps, "steps", 0, "Stop after N steps in headless mode (0 = run forever).")
	flag.BoolVar(&opts.AssocFails, "assoc-fail", false, "Simulate wireless association failure.")
	flag.StringVar(&opts.ConfigPath, "config", "", "Settings file path (default: user config dir).")
	flag.StringVar(&cfg.PortalAddr, "portal", "127.0.0.1:8080", "Setup portal listen address (empty = disabled).")
	flag.Parse()

	newApp := func(h hal.HAL) func() error {
		return app.New(h, cfg)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, opts, newApp, headless); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(opts, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
