package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oldg9516/ai-agents-stats/internal/cli"
)

func main() {
	_ = godotenv.Load() // loads .env when present

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
