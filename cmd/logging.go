package cmd

import (
	"os"

	"github.com/achilleasa/pray/log"
	"github.com/urfave/cli"
)

var logger = log.New("pray")

// Global logging flags.
func LoggingFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write log output to this file",
		},
	}
}

// Apply the global logging flags. The returned function closes the log file
// if one was opened.
func setupLogging(ctx *cli.Context) (func(), error) {
	closeFn := func() {}

	if logFile := ctx.GlobalString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, err
		}
		log.SetSink(os.Stdout, f)
		closeFn = func() {
			log.SetSink(os.Stdout)
			f.Close()
		}
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return closeFn, nil
}
