package main

import (
	"os"

	"github.com/achilleasa/pray/cmd"
	"github.com/achilleasa/pray/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	runFlags := cmd.RunFlags()

	app := cli.NewApp()
	app.Name = "pray"
	app.Usage = "interactive opencl ray tracer"
	app.Version = "0.1.0"
	app.Flags = cmd.LoggingFlags()
	app.Commands = []cli.Command{
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
		{
			Name:  "run",
			Usage: "render a level interactively",
			Description: `
Load a level, open a window and render it until the window is closed.

Move with W/S/A/D and PageUp/PageDown, tilt with Q/E and zoom with the
mouse wheel. NumLock toggles mouse look and the Up/Down arrows adjust the
ambient light. Settings may be loaded from a TOML file whose keys match
the flag names.`,
			ArgsUsage: "level.llf",
			Flags:     runFlags,
			Before:    cmd.LoadSettings(runFlags),
			Action:    cmd.RunLevel,
		},
		{
			Name:      "scene-info",
			Usage:     "load a level and display its contents",
			ArgsUsage: "level.llf",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "materials",
					Value: "data/materials.mpl",
					Usage: "path or URL of the material library",
				},
			},
			Action: cmd.ShowSceneInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("pray").Errorf("%s", err.Error())
		os.Exit(1)
	}
}
