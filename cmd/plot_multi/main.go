// plot_multi overlays one column from every <prefix>*.csv recorder log on a
// shared elapsed-time axis.
//
//	plot_multi [flags] <csv_path_prefix>
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
		Name:      "plot_multi",
		Usage:     "overlay a column from every CSV matching a path prefix",
		ArgsUsage: "<csv_path_prefix>  (flags go before the path)",
		Flags: append(tools.CommonFlags(),
			&cli.StringFlag{Name: "timestamp", Usage: "nanosecond timestamp `COLUMN` (default: timestamp_ns)"},
			tools.ColumnFlag("`COLUMN` to overlay, repeatable (default: t_ave; e.g. t_hs, i_d)"),
		),
		Action: tools.Action(config.PlotMulti, tools.PlotMulti),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
