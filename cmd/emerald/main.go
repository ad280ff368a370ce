package main

import "github.com/terraincognita07/emerald/internal/cli"

func main() {
	cli.Execute()
}
