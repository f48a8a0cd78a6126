package main

import (
	"flag"
	"log"
	"os"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/web/server"
)

func main() {
	// Parse command line flags
	addr := flag.String("addr", "localhost:8080", "Address to serve on")
	flag.Parse()

	webServer := server.NewServer(*addr, core.NewStdoutLogger())

	log.Printf("Raytracer Web Server")
	log.Printf("Connect to ws://%s/ws/render to start rendering", *addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
