package main

import "github.com/tessro/vortex/internal/cli"

func main() {
	cli.Execute()
}
