package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/ats-matcher/cmd"
)

func main() {
	// GEMINI_API_KEY and friends may live in a local .env file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
