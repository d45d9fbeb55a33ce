// Package cli contains the sparseplan command line.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// Flags.
const (
	debugFlag   = "debug"
	logFileFlag = "log-file"

	planFlagModel       = "model"
	planFlagSampling    = "sampling"
	planFlagMaxAttempts = "max-replanning-attempts"
	planFlagThreads     = "threads"
	planFlagTiming      = "timing"
	planFlagPlot        = "plot"

	modelGantry = "gantry"
	modelPlanar = "planar"
)

var app = &cli.App{
	Name:            "sparseplan",
	Usage:           "solve dense Cartesian trajectories in joint space",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "plan",
			Usage:     "plan a trajectory file and print the joint path",
			ArgsUsage: "<trajectory.json>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  planFlagModel,
					Usage: "kinematic model to plan for, one of: " + modelGantry + ", " + modelPlanar,
					Value: modelGantry,
				},
				&cli.Float64Flag{
					Name:  planFlagSampling,
					Usage: "target number of sparse points",
					Value: 10,
				},
				&cli.IntFlag{
					Name:  planFlagMaxAttempts,
					Usage: "number of promotions allowed before giving up",
					Value: 100,
				},
				&cli.IntFlag{
					Name:  planFlagThreads,
					Usage: "number of segments validated concurrently; defaults to SPARSEPLAN_NUM_THREADS",
				},
				&cli.BoolFlag{
					Name:  planFlagTiming,
					Usage: "print the time spent in each planning stage",
				},
			},
			Action: PlanAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
