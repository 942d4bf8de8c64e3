package main

import "extguard/internal/cli"

func main() {
	cli.Execute()
}
