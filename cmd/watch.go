package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima/engine/assets"
	"github.com/urfave/cli"
)

// Watch a directory and reimport models whenever they change.
func Watch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("watch: expected a single directory", 1)
	}

	imp, teardown, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer teardown()

	am, err := assets.NewAssetManager(imp, assets.WithReimport(true))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer am.Close()

	if err := am.Initialize(ctx.Args().First()); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, a := range am.Assets() {
		fmt.Fprintf(ctx.App.Writer, "%-8s %s\n", a.Type, a.Path)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	for {
		select {
		case ev, ok := <-am.Events():
			if !ok {
				return nil
			}
			switch {
			case ev.Err != nil:
				fmt.Fprintf(ctx.App.Writer, "%s %s: %s\n", ev.Op, ev.Path, ev.Err)
			case ev.Scene != nil:
				fmt.Fprintf(ctx.App.Writer, "%s %s: %s\n", ev.Op, ev.Path, ev.Scene)
			default:
				fmt.Fprintf(ctx.App.Writer, "%s %s (%s)\n", ev.Op, ev.Path, ev.Type)
			}
		case <-sigCh:
			return nil
		}
	}
}
