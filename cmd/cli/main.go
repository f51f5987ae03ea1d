package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Normalno100/InsuranceApplication-sub001/cmd/cli/cmd"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

func main() {
	_ = godotenv.Load()

	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
