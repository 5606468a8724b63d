package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	logger  = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "dbmbk",
	Short: "Curve-driven luma remapping and adaptive debanding strengths",
	Long: `dbmbk maps pixel levels or per-frame average luma through a Bézier
curve or an elementary function.

  remap    build a 256-entry lookup table from a cubic Bézier and apply it
           to the selected planes of every frame
  adapt    derive y/cb/cr debanding strengths from each frame's average
           luma and hand them to the filter
  preview  plot a curve for inspection`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"dbmbk %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose logs a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	logger.Debugf(format, args...)
}
