package main

import (
	"flag"
	"log"
	"os"

	cfgPkg "github.com/centinela-io/centinela/pkg/config"
	"github.com/centinela-io/centinela/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("config: %v", e)
		}
		log.Fatal("invalid configuration")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close()

	if err := srv.Run(os.Getenv("PORT")); err != nil {
		log.Fatal(err)
	}
}
