package main

import "github.com/Skotchmaster/tienda/internal/cli"

func main() {
	cli.Execute()
}
