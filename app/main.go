package main

import (
	"os"

	"feedbox/app/commands"
)

func main() {
	os.Exit(commands.Run())
}
