package cmd

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/scene"
	"github.com/spaghettifunk/anima/engine/systems"
	"github.com/urfave/cli"
)

// Import every file given as argument and print a summary of each scene.
func Info(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError("info: at least one model file is required", 1)
	}

	imp, teardown, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer teardown()

	js, err := systems.NewJobSystem(runtime.NumCPU(), ctx.NArg())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	reports := make([]string, ctx.NArg())
	var failed int32
	for idx := 0; idx < ctx.NArg(); idx++ {
		idx := idx
		file := ctx.Args().Get(idx)
		err := js.Submit(systems.JobTask{
			Name: file,
			Run: func() (interface{}, error) {
				return imp.Import(file, 0)
			},
			OnComplete: func(result interface{}) {
				reports[idx] = describeScene(result.(*scene.Scene), ctx.Bool("nodes"))
			},
			OnFailure: func(err error) {
				reports[idx] = fmt.Sprintf("%s: %s\n", file, err)
				atomic.AddInt32(&failed, 1)
			},
		})
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	js.Shutdown()

	for _, r := range reports {
		fmt.Fprint(ctx.App.Writer, r)
	}

	m := core.MetricsSnapshot()
	core.LogInfo("imported %d file(s), %d failed, avg %.2fms", m.Imports, m.Failures, m.MSavg)
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d file(s) failed to import", failed, ctx.NArg()), 1)
	}
	return nil
}

func describeScene(sc *scene.Scene, nodes bool) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("scene %s\n", sc.Source))
	buf.WriteString(fmt.Sprintf("  Flags      %s\n", sc.Flags))
	buf.WriteString(fmt.Sprintf("  Meshes     %d\n", sc.NumMeshes()))
	buf.WriteString(fmt.Sprintf("  Vertices   %d\n", sc.NumVertices()))
	buf.WriteString(fmt.Sprintf("  Faces      %d\n", sc.NumFaces()))
	buf.WriteString(fmt.Sprintf("  Materials  %d\n", sc.NumMaterials()))
	buf.WriteString(fmt.Sprintf("  Textures   %d\n", len(sc.Textures)))
	buf.WriteString(fmt.Sprintf("  Animations %d\n", sc.NumAnimations()))
	buf.WriteString(fmt.Sprintf("  Lights     %d\n", len(sc.Lights)))
	buf.WriteString(fmt.Sprintf("  Cameras    %d\n", len(sc.Cameras)))

	for mIdx, m := range sc.Meshes {
		name := "-"
		if mat := sc.MaterialOf(m); mat != nil && mat.Name() != "" {
			name = mat.Name()
		}
		buf.WriteString(fmt.Sprintf("  [Mesh %02d] %q vertices %d faces %d material %s\n", mIdx, m.Name, m.NumVertices(), m.NumFaces(), name))
	}

	if nodes {
		sc.Walk(func(n *scene.Node) bool {
			buf.WriteString(fmt.Sprintf("  %s%s (%d meshes)\n", strings.Repeat("  ", n.Depth()), n.Name, len(n.MeshIndices)))
			return true
		})
	}
	return buf.String()
}
