package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/export"
	"github.com/urfave/cli"
)

// Import a model and write it back out as glTF.
func Convert(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.NewExitError("convert: expected an input file and an output .gltf or .glb file", 1)
	}
	in, out := ctx.Args().Get(0), ctx.Args().Get(1)
	switch strings.ToLower(filepath.Ext(out)) {
	case ".gltf", ".glb":
	default:
		err := fmt.Errorf("convert: output %q: %w", filepath.Ext(out), core.ErrUnsupportedFormat)
		return cli.NewExitError(err.Error(), 1)
	}

	imp, teardown, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer teardown()

	sc, err := imp.Import(in, 0)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := export.WriteGLTF(sc, out); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "%s -> %s\n", in, out)
	return nil
}
