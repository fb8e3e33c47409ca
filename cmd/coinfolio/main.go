package main

import "github.com/rustyeddy/coinfolio/internal/cli"

func main() {
	cli.Execute()
}
