package main

import "github.com/aalvaropc/navlink/internal/cli"

func main() {
	cli.Execute()
}
