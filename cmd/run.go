package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/pray/asset"
	"github.com/achilleasa/pray/display/opengl"
	"github.com/achilleasa/pray/input"
	"github.com/achilleasa/pray/renderer"
	"github.com/achilleasa/pray/tracer/opencl"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"github.com/urfave/cli/altsrc"
)

var errMissingLevel = errors.New("missing level file argument")

// Flags for the run command. All flags except config can also be set from
// a TOML settings file.
func RunFlags() []cli.Flag {
	defaults := renderer.DefaultOptions()

	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a TOML file",
		},
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "width",
			Value: int(defaults.FrameW),
			Usage: "window width",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "height",
			Value: int(defaults.FrameH),
			Usage: "window height",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "window-mode",
			Value: int(opengl.Windowed),
			Usage: "0 for windowed, 1 for fullscreen and 2 for borderless at the native resolution",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "monitor",
			Value: "primary",
			Usage: `monitor for fullscreen modes; "primary" or a zero based index`,
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "max-distance-1",
			Value: float64(defaults.MaxDistances[0]),
			Usage: "view distance for objects in distance tier 1",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "max-distance-2",
			Value: float64(defaults.MaxDistances[1]),
			Usage: "view distance for objects in distance tier 2",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "max-distance-3",
			Value: float64(defaults.MaxDistances[2]),
			Usage: "view distance for objects in distance tier 3",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "max-distance-4",
			Value: float64(defaults.MaxDistances[3]),
			Usage: "view distance for objects in distance tier 4",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "transparency-depth",
			Value: int(defaults.TransparencyDepth),
			Usage: "number of transparency layers (1-4)",
		}),
		altsrc.NewIntFlag(cli.IntFlag{
			Name:  "aa-sub-rays",
			Value: int(defaults.AASubRays),
			Usage: "anti-aliasing sub-rays per pixel (1, 4, 9 or 16)",
		}),
		altsrc.NewFloat64Flag(cli.Float64Flag{
			Name:  "mouse-sensitivity",
			Value: float64(defaults.MouseSensitivity),
			Usage: "mouse look sensitivity",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "kernel",
			Value: "data/kernels/compute.cl",
			Usage: "path to the opencl kernel source",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "materials",
			Value: "data/materials.mpl",
			Usage: "path or URL of the material library",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "device",
			Usage: "only use opencl devices whose name contains this value",
		}),
		altsrc.NewStringFlag(cli.StringFlag{
			Name:  "build-log",
			Usage: "write the kernel build log to this file if the build fails",
		}),
		altsrc.NewBoolFlag(cli.BoolFlag{
			Name:  "legacy-screen-cull",
			Usage: "use the legacy screen space bounds test",
		}),
	}
}

// Load settings from the file passed with --config before running the
// command action.
func LoadSettings(flags []cli.Flag) cli.BeforeFunc {
	load := altsrc.InitInputSourceWithContext(flags, altsrc.NewTomlSourceFromFlagFunc("config"))
	return func(ctx *cli.Context) error {
		if ctx.String("config") == "" {
			return nil
		}
		return load(ctx)
	}
}

// Build renderer options from the command flags.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.AASubRays = uint32(ctx.Int("aa-sub-rays"))
	opts.TransparencyDepth = uint32(ctx.Int("transparency-depth"))
	opts.MouseSensitivity = float32(ctx.Float64("mouse-sensitivity"))
	opts.LegacyScreenCull = ctx.Bool("legacy-screen-cull")
	for tier := range opts.MaxDistances {
		opts.MaxDistances[tier] = float32(ctx.Float64(fmt.Sprintf("max-distance-%d", tier+1)))
	}

	if ctx.Int("width") <= 0 || ctx.Int("height") <= 0 {
		return opts, fmt.Errorf("%w: %dx%d", renderer.ErrInvalidFrameSize, ctx.Int("width"), ctx.Int("height"))
	}
	return opts, opts.Validate()
}

func windowConfig(ctx *cli.Context, level string) (opengl.Config, error) {
	mode := ctx.Int("window-mode")
	if mode < int(opengl.Windowed) || mode > int(opengl.BorderlessNative) {
		return opengl.Config{}, fmt.Errorf("invalid window mode %d", mode)
	}
	return opengl.Config{
		Title:   "pray: " + level,
		Width:   uint32(ctx.Int("width")),
		Height:  uint32(ctx.Int("height")),
		Mode:    opengl.WindowMode(mode),
		Monitor: ctx.String("monitor"),
	}, nil
}

// Open a window and run the interactive renderer for a level.
func RunLevel(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	defer closeLog()
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errMissingLevel
	}
	level := ctx.Args().First()

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}
	winCfg, err := windowConfig(ctx, level)
	if err != nil {
		return err
	}

	sc, err := asset.LoadLevel(level, asset.LoadOptions{Materials: ctx.String("materials")})
	if err != nil {
		return err
	}

	dev, err := opencl.SelectDevice(ctx.String("device"))
	if err != nil {
		return err
	}

	queue := input.NewQueue(input.DefaultQueueSize)
	win, err := opengl.NewWindow(winCfg, queue)
	if err != nil {
		return err
	}
	defer win.Close()

	// Borderless mode picks the native resolution.
	w, h := win.Size()
	opts.FrameW, opts.FrameH = uint32(w), uint32(h)

	tr, err := opencl.NewTracer(dev, opencl.Config{
		FrameW:            opts.FrameW,
		FrameH:            opts.FrameH,
		SubRays:           opts.AASubRays,
		TransparencyDepth: opts.TransparencyDepth,
		KernelFile:        ctx.String("kernel"),
		BuildLogFile:      ctx.String("build-log"),
	})
	if err != nil {
		return err
	}
	defer tr.Close()

	r, err := renderer.NewOrchestrator(sc, tr, win, queue, &opts)
	if err != nil {
		return err
	}
	defer r.Close()

	summary := &renderer.StatsSummary{}
	err = r.Run(summary)
	if summary.Frames > 0 {
		logger.Noticef("rendered %d frames\n%s", summary.Frames, statsTable(summary))
	}
	if dropped := queue.Dropped(); dropped > 0 {
		logger.Warningf("dropped %d input events", dropped)
	}
	return err
}

// Render a stats summary as a table.
func statsTable(summary *renderer.StatsSummary) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Min", "Mean", "Max"})
	for stage := renderer.Stage(0); stage < renderer.NumStages; stage++ {
		table.Append([]string{
			stage.String(),
			summary.StageMin[stage].String(),
			summary.StageMean(stage).String(),
			summary.StageMax[stage].String(),
		})
	}
	table.SetFooter([]string{"frame", summary.RenderMin.String(), summary.RenderMean().String(), summary.RenderMax.String()})
	table.Render()

	counters := tablewriter.NewWriter(&buf)
	counters.SetAutoFormatHeaders(false)
	counters.SetHeader([]string{"Counter", "Total", "Per frame"})
	perFrame := func(v int) string {
		return fmt.Sprintf("%.1f", float64(v)/float64(summary.Frames))
	}
	counters.Append([]string{"dispatched objects", fmt.Sprintf("%d", summary.Dispatched), perFrame(summary.Dispatched)})
	for reason, count := range summary.Culled {
		if reason == int(renderer.NotCulled) {
			continue
		}
		counters.Append([]string{
			fmt.Sprintf("culled (%s)", renderer.CullReason(reason)),
			fmt.Sprintf("%d", count),
			perFrame(count),
		})
	}
	counters.Append([]string{"dispatched pixels", fmt.Sprintf("%d", summary.PixelArea), perFrame(summary.PixelArea)})
	counters.Render()

	return buf.String()
}
