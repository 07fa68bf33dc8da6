package main

import (
	"github.com/partybox-games/roomserver/internal/cli"
)

func main() {
	cli.Execute()
}
