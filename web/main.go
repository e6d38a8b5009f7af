package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-softraycast/pkg/config"
	"github.com/df07/go-softraycast/web/server"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory containing JSON scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Softraycast Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
