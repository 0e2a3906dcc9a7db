package main

import "github.com/andrescamacho/baron-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
