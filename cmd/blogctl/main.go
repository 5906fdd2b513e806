package main

import "github.com/gn1blog/internal/cli"

func main() {
	cli.Execute()
}
