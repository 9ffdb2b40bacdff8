package main

import "tilereel/internal/cli"

func main() {
	cli.Main()
}
