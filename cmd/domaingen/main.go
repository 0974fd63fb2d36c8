// domaingen loads a SQL schema description into an ephemeral database and
// generates one typed query model per table.
//
// Typical use is from a go:generate directive:
//
//	//go:generate go run github.com/syssam/domaingen/cmd/domaingen --schema domain-desc.sql --package com.example.model
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
