package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/df07/go-voxel-raytracer/pkg/config"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/loaders"
	"github.com/df07/go-voxel-raytracer/web/server"
)

func main() {
	// Parse command line flags
	cfg := config.DefaultConfig()
	config.BindFlags(flag.CommandLine, cfg)
	configPath := flag.String("config", "", "JSON config file (flags override its values)")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Printf("Error loading config: %v", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(flag.CommandLine))
	}

	logger := core.NewDefaultLogger()
	mats, err := loaders.ResolveMaterials(context.Background(), cfg.Assets, cfg.AssetCache, logger)
	if err != nil {
		log.Printf("Error loading textures: %v", err)
		os.Exit(1)
	}

	// Create and start web server
	webServer := server.NewServer(cfg, mats, logger)
	defer webServer.Close()

	log.Printf("Voxel Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
