package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	ikasamamcp "ikasama/internal/mcp"
)

func main() {
	rulesFile := flag.String("config", "", "path to a rules YAML file (defaults when empty)")
	cardsFile := flag.String("cards", "", "path to a card catalog YAML file (built-in set when empty)")
	flag.Parse()

	if *rulesFile != "" {
		rules, err := config.Load(*rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ikasamamcp.SetRules(rules)
	}
	if *cardsFile != "" {
		cat, err := catalog.LoadFile(*cardsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ikasamamcp.SetCatalog(cat)
	}

	s := server.NewMCPServer("ikasama", "1.0.0")
	ikasamamcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
