package main

import "github.com/cipherplay/cipherrps/internal/cli"

func main() {
	cli.Execute()
}
