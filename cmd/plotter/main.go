// plotter plots temperatures from a motor-controller current test log after
// normalising the host angle, and prints the mean motor and bus currents.
//
//	plotter [flags] <csv_path>
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Arbite-Robotics/jcs-applications/src/config"
	"github.com/Arbite-Robotics/jcs-applications/src/logging"
	"github.com/Arbite-Robotics/jcs-applications/src/tools"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "plotter",
		Usage:     "plot temperatures of a rotating-frame current test",
		ArgsUsage: "<csv_path>  (flags go before the path)",
		Flags: append(tools.CommonFlags(),
			&cli.BoolFlag{Name: "no-invert", Usage: "keep the normalised host angle instead of 2π − angle"},
			&cli.BoolFlag{Name: "absolute-time", Usage: "plot recorder time in seconds without rebasing on the first row"},
			tools.ColumnFlag("`COLUMN` to plot, repeatable (default: t_0, t_1, t_hs)"),
		),
		Action: tools.Action(config.Plotter, tools.PlotRotating),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
