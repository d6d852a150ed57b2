package main

import (
	"context"

	"github.com/faizmokh/minitrack/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
