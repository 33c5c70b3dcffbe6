// plot_tool plots columns of one CSV written by the rig's host oscilloscope.
//
//	plot_tool [flags] <csv_path>
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
		Name:      "plot_tool",
		Usage:     "plot columns of a host oscilloscope CSV against time",
		ArgsUsage: "<csv_path>  (flags go before the path)",
		Flags: append(tools.CommonFlags(),
			&cli.StringFlag{Name: "x", Usage: "x-axis `COLUMN` (default: t)"},
			tools.ColumnFlag("`COLUMN` to plot, repeatable (default: sg_0::sg_an_0; e.g. mc_0::i_q, mc_0::t_ave)"),
		),
		Action: tools.Action(config.PlotTool, tools.PlotSingle),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
