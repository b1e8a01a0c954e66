package main

import (
	"os"

	"github.com/bssshyamsundhar/float-chat/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
