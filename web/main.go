package main

import (
	"flag"
	"log"
	"os"

	"github.com/joe-loach/kerrbhy/pkg/loaders"
	"github.com/joe-loach/kerrbhy/pkg/sky"
	"github.com/joe-loach/kerrbhy/pkg/texture"
	"github.com/joe-loach/kerrbhy/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	starmap := flag.String("starmap", "", "Starfield image for the texture sky (default: baked procedural stars)")
	flag.Parse()

	var tex *texture.Texture2D
	if *starmap != "" {
		var err error
		if tex, err = loaders.LoadImage(*starmap); err != nil {
			log.Printf("Error loading starmap: %v", err)
			os.Exit(1)
		}
	} else {
		tex = sky.BakeStarfield(sky.NewProceduralSky(), 2048, 1024)
	}

	webServer := server.NewServer(*port, tex)

	log.Printf("Black Hole Renderer Web Server")
	log.Printf("Visit http://localhost:%d/api/config to get started", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
