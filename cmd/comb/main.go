// Package main implements the comb daemon: a single binary with no
// arguments or flags that remaps evdev input to a virtual uinput
// device according to $XDG_CONFIG_HOME/comb/config.toml. Exit code 0
// on clean shutdown, non-zero on startup failure, per spec.md §6.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/internal/configwatch"
	"github.com/DrStormWalker/comb/internal/devicewatch"
	"github.com/DrStormWalker/comb/internal/dispatch"
	"github.com/DrStormWalker/comb/internal/multiplex"
	"github.com/DrStormWalker/comb/internal/pipeline"
)

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "comb:", err)
		os.Exit(1)
	}
}

func main() {
	configPath, err := config.Locate()
	exitIf(err)

	tx, rx := pipeline.New(64)

	mux, err := multiplex.New(tx)
	exitIf(err)
	go mux.Run()

	cw, err := configwatch.New(configPath, tx)
	exitIf(err)
	go cw.Run()

	dw, err := devicewatch.New(tx)
	exitIf(err)
	go dw.Run()

	d, err := dispatch.New(configPath, rx, mux)
	exitIf(err)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cw.Stop()
		dw.Stop()
		mux.Stop()
		d.Close()
		os.Exit(0)
	}()

	d.Run()
}
