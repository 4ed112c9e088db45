// Package main - Entry point for the retail-analytics API server
package main

import (
	"flag"
	"fmt"
	"os"

	"retail-analytics/api"
	"retail-analytics/internal/config"
	"retail-analytics/internal/logging"
)

func main() {
	addr := flag.String("addr", "", "server address (overrides config)")
	cfgFile := flag.String("config", "", "config file")
	flag.Parse()

	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := api.NewServer(cfg.Version, cfg.Server.MaxBodyBytes)

	fmt.Printf("retail-analytics server v%s listening on %s\n", cfg.Version, listen)
	if err := srv.ListenAndServe(listen); err != nil {
		logging.Fatal("server stopped: " + err.Error())
	}
}
