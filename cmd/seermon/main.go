package main

import (
	"os"

	"github.com/go-gost/core/logger"
	xlogger "github.com/go-gost/seermon/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "seermon",
		Short: "Evaluate an intrusion detection classifier with labeled probes",
		Long: `seermon sends a corpus of labeled probes to a classifier, collects the
Seer verdicts it emits and reports accuracy, false positive and false
negative rates once every probe has a verdict.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	logger.SetDefault(xlogger.NewLogger())

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "configuration file")
	rootCmd.AddCommand(runCmd, fixtureCmd, decodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Default().Error(err)
		os.Exit(1)
	}
}
