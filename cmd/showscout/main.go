package main

import (
	"context"

	"showscout/cmd/showscout/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
