package main

import "github.com/mcoot/patchworkgame-go/internal/cli"

func main() {
	cli.Execute()
}
