package main

import "parkmap/internal/cli"

func main() {
	cli.Execute()
}
