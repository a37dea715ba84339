package main

import (
	"os"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
