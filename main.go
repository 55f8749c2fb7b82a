package main

import "vaultshot/internal/cli"

func main() {
	cli.Execute()
}
