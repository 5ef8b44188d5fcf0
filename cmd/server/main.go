// Package main - Entry point for the LogiQuant quote server
package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"logiquant/api"
	"logiquant/core/quote"
	"logiquant/core/rates"
	"logiquant/internal/config"
	"logiquant/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "Server address (default from config, :8080)")
	cfgPath := flag.String("config", "", "Config file (.json, .yaml)")
	ratesPath := flag.String("rates", "", "HCL rate table (default is the built-in table)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	}

	// The server logs JSON unless the config says otherwise
	if *cfgPath == "" {
		cfg.Logging.Format = "json"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	table := rates.Default()
	if *ratesPath == "" {
		*ratesPath = cfg.Rates.File
	}
	if *ratesPath != "" {
		loaded, err := rates.LoadFile(*ratesPath)
		if err != nil {
			logging.Fatal("failed to load rate table", zap.String("path", *ratesPath), zap.Error(err))
		}
		table = loaded
	}

	if *addr == "" {
		*addr = cfg.Server.Addr
	}

	calc := quote.NewCalculator(table, cfg.CalculatorConfig())
	server := api.NewServer(calc, api.Config{
		Version:                     version,
		CacheMaxAgeSeconds:          cfg.Server.CacheMaxAgeSeconds,
		StaleWhileRevalidateSeconds: cfg.Server.StaleWhileRevalidateSeconds,
	})

	fmt.Printf("LogiQuant quote server v%s (rates %s)\n", version, calc.RatesVersion())
	fmt.Printf("   API: http://localhost%s/api/v1/total\n", *addr)
	fmt.Println()

	logging.Info("listening", zap.String("addr", *addr), zap.String("rates_version", calc.RatesVersion()))
	if err := server.ListenAndServe(*addr); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
