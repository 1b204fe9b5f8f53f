package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/pray/tracer/opencl/device"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List available opencl platforms and devices.
func ListDevices(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	defer closeLog()
	if err != nil {
		return err
	}

	platforms, err := device.GetPlatformInfo()
	if err != nil {
		return err
	}

	logger.Noticef("system provides %d opencl platform(s)\n%s", len(platforms), deviceTable(platforms))
	return nil
}

func deviceTable(platforms []device.PlatformInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Platform", "Device", "Type", "Version", "GFlops", "GL sharing", "Images", "Max work group"})
	for pIdx, pl := range platforms {
		for dIdx, d := range pl.Devices {
			table.Append([]string{
				fmt.Sprintf("[%02d] %s", pIdx, pl.Name),
				fmt.Sprintf("[%02d] %s", dIdx, d.Name),
				d.Type.String(),
				d.Version,
				fmt.Sprintf("%d", d.Speed),
				yesNo(d.SupportsGLSharing()),
				yesNo(d.ImageSupport),
				fmt.Sprintf("%d", d.MaxWorkGroupSize),
			})
		}
	}
	table.Render()
	return buf.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
