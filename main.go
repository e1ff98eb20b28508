package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rsarkar/bayestutor/cmd"
)

func main() {
	// A .env in the working directory may carry LLM API keys.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
