package main

import "github.com/okian/arcade/internal/cli"

func main() {
	cli.Execute()
}
