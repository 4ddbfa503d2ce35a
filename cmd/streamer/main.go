// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/telemetry_bridge/internal/app"
	"github.com/relabs-tech/telemetry_bridge/internal/config"
)

func main() {
	configPath := flag.String("config", "./telemetry_config.txt", "path to configuration file")
	useMock := flag.Bool("mock", false, "use generated signals instead of the MPU-6050")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunStreamer(*useMock); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
