package main

import (
	"os"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
