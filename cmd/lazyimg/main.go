package main

import (
	"github.com/matjam/lazyimg/internal/cli"
)

func main() {
	cli.Execute()
}
