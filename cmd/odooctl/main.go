package main

import "github.com/example/odooctl/internal/cli"

func main() {
	cli.Execute()
}
