package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/urfave/cli"
)

// List the file extensions the native library can import.
func Formats(ctx *cli.Context) error {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("assimp %s (%s)\n\n", assimp.Version(), assimp.CompileFlags()))
	exts := assimp.SupportedExtensions()
	buf.WriteString(fmt.Sprintf("%d supported extension(s):\n", len(exts)))
	for i := 0; i < len(exts); i += 8 {
		end := i + 8
		if end > len(exts) {
			end = len(exts)
		}
		buf.WriteString("  " + strings.Join(exts[i:end], " ") + "\n")
	}
	if ctx.Bool("legal") {
		buf.WriteString("\n" + assimp.LegalString() + "\n")
	}

	_, err := ctx.App.Writer.Write(buf.Bytes())
	return err
}
