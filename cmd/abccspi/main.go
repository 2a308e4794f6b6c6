// Package main runs the ABCC SPI renderer as a CLI
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/erh/goabcc/analyzer/cli"
	"github.com/erh/goabcc/common"
)

func main() {
	common.IsCLI.Store(true)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli, err := cli.New(os.Args)
	handleErr(err)
	handleErr(cli.Run(ctx))
}

func handleErr(err error) {
	if err == nil {
		return
	}
	var exitErr *common.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprint(os.Stderr, err.Error())
	os.Exit(1)
}
