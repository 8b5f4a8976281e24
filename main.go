package main

import "github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
