package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/achilleasa/pray/asset"
	"github.com/achilleasa/pray/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Load a level without an opencl device and display its contents.
func ShowSceneInfo(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	defer closeLog()
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errMissingLevel
	}

	sc, err := asset.LoadLevel(ctx.Args().First(), asset.LoadOptions{Materials: ctx.String("materials")})
	if err != nil {
		return err
	}

	logger.Noticef("scene information\ncamera: %s\n%s", sc.Camera, sceneTables(sc))
	return nil
}

func sceneTables(sc *scene.Scene) string {
	var buf bytes.Buffer

	objects := tablewriter.NewWriter(&buf)
	objects.SetAutoFormatHeaders(false)
	objects.SetAutoWrapText(false)
	objects.SetHeader([]string{"Partition", "Index", "ID", "Name", "Type", "Mesh LoDs", "Texture LoDs", "Max dist", "Flags"})
	for p := range sc.Partitions {
		sc.Partitions[p].Each(func(o *scene.Object) error {
			partition := fmt.Sprintf("%d", p)
			if p == scene.LightsPartition {
				partition = "lights"
			}
			meshLoDs, texLoDs := 0, 0
			if o.Mesh != nil {
				meshLoDs = len(o.Mesh.LoDs)
			}
			if o.Texture != nil {
				texLoDs = len(o.Texture.LoDs)
			}
			objects.Append([]string{
				partition,
				fmt.Sprintf("%d", o.Index),
				o.ID,
				o.Name,
				fmt.Sprintf("%d", o.Type),
				fmt.Sprintf("%d", meshLoDs),
				fmt.Sprintf("%d", texLoDs),
				fmt.Sprintf("%d", o.MaxDistTier),
				objectFlags(o),
			})
			return nil
		})
	}
	objects.SetFooter([]string{"", "", "", "", "", fmt.Sprintf("%d chains", len(sc.Meshes)), fmt.Sprintf("%d chains", len(sc.Textures)), "TOTAL", fmt.Sprintf("%d", sc.ObjectCount())})
	objects.Render()

	lights := tablewriter.NewWriter(&buf)
	lights.SetAutoFormatHeaders(false)
	lights.SetHeader([]string{"Light", "Kind", "Proxy", "Position", "Radius", "Range", "Power"})
	for _, l := range sc.Lights.Endless {
		lights.Append(lightRow(l, "endless"))
	}
	for _, l := range sc.Lights.Falloff {
		lights.Append(lightRow(l, "falloff"))
	}
	lights.Render()

	fmt.Fprintf(&buf, "ambient: %v, materials: %d", sc.Lights.Ambient, sc.Materials.Len())
	return buf.String()
}

func lightRow(l *scene.Light, kind string) []string {
	proxy := ""
	if l.Object != nil {
		proxy = l.Object.ID
	}
	return []string{
		l.ID,
		kind,
		proxy,
		fmt.Sprintf("%v", l.Position),
		fmt.Sprintf("%.2f", l.Radius),
		fmt.Sprintf("%.2f", l.Range),
		fmt.Sprintf("%.2f", l.Power),
	}
}

// Summarize object flags as a compact string.
func objectFlags(o *scene.Object) string {
	var out []string
	for _, f := range []struct {
		flag scene.Flag
		name string
	}{
		{scene.FlagVisible, "visible"},
		{scene.FlagSolid, "solid"},
		{scene.FlagStatic, "static"},
		{scene.FlagOccluder, "occluder"},
		{scene.FlagShowBackFaces, "backfaces"},
		{scene.FlagLightObject, "light"},
	} {
		if o.Has(f.flag) {
			out = append(out, f.name)
		}
	}
	return strings.Join(out, ",")
}
