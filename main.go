package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusedev/anymotion-cli/config"
	"github.com/reusedev/anymotion-cli/internal/modules/logs"
	"github.com/reusedev/anymotion-cli/internal/service/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.Init(config.Path()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logs.InitLogger(config.GConfig)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return cli.Run(ctx, config.GConfig, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
