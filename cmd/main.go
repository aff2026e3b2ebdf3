package main

import (
	"os"

	"github.com/bhaviksharmawork/Quizzer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
