package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	rulesFile := flag.String("config", "", "path to a rules YAML file (defaults when empty)")
	cardsFile := flag.String("cards", "", "path to a card catalog YAML file (built-in set when empty)")
	flag.Parse()

	rules := config.Default()
	if *rulesFile != "" {
		var err error
		rules, err = config.Load(*rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cat := catalog.Default()
	if *cardsFile != "" {
		var err error
		cat, err = catalog.LoadFile(*cardsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	srv := server.New(rules, cat)
	log.Printf("ikasama server listening on %s", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
