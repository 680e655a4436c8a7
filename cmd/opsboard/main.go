package main

import "opsboard/internal/cli"

func main() {
	cli.Execute()
}
