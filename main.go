package main

import (
	"os"

	"github.com/spaghettifunk/anima/cmd"
	"github.com/spaghettifunk/anima/engine/config"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "anima-import"
	app.Usage = "inspect and convert 3D model files"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging, including the native importer",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "import configuration file (default " + config.DefaultPath + ")",
		},
		cli.StringSliceFlag{
			Name:  "flags, f",
			Value: &cli.StringSlice{},
			Usage: "post-processing step, repeatable or joined with '|' (overrides the configuration)",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write native importer messages to this file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "print a summary of one or more model files",
			Description: `
Import every file with the configured post-processing steps and print the
number of meshes, vertices, faces, materials and animations it contains.`,
			ArgsUsage: "model1.obj model2.fbx ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "nodes, n",
					Usage: "also print the node hierarchy",
				},
			},
			Action: cmd.Info,
		},
		{
			Name:  "formats",
			Usage: "list the file extensions that can be imported",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "legal",
					Usage: "print the native library's license text",
				},
			},
			Action: cmd.Formats,
		},
		{
			Name:      "convert",
			Usage:     "convert a model file to glTF",
			ArgsUsage: "input.fbx output.gltf|output.glb",
			Action:    cmd.Convert,
		},
		{
			Name:  "watch",
			Usage: "watch a directory and reimport models when they change",
			Description: `
Index every model, image and material file below the directory and import
models again as soon as they are written. Stop with Ctrl-C.`,
			ArgsUsage: "directory",
			Action:    cmd.Watch,
		},
	}

	if err := app.Run(os.Args); err != nil {
		core.LogFatal(err.Error())
	}
}
