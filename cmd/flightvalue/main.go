package main

import (
	"context"

	"github.com/dharmasatrya/flightvalue/cmd/flightvalue/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
