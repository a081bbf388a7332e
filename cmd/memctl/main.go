package main

import "memorymatch/internal/cli"

func main() {
	cli.Execute()
}
