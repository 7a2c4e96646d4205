package cmd

import (
	"os"

	"github.com/creativeprojects/mailfolder/cfg"
	"github.com/creativeprojects/mailfolder/term"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mailfolder",
	Short: "Mail folder tools: list, count, save",
	Long:  "\nMail folder tools: list folders and messages, count unread mail, save messages into local maildirs or remote IMAP folders",
}

func init() {
	cobra.OnInitialize(initConfig, initLog)
	flag := rootCmd.PersistentFlags()
	flag.StringVarP(&global.configFile, "config", "c", "mailfolder.yaml", "configuration file")
	flag.BoolVarP(&global.quiet, "quiet", "q", false, "only display warnings and errors")
	flag.BoolVarP(&global.verbose, "verbose", "v", false, "display debugging information")
}

func initConfig() {
	var err error
	config, err = cfg.LoadFromFile(global.configFile)
	if err != nil {
		term.Errorf("cannot open or read configuration file: %s", err)
		os.Exit(1)
	}
}

func initLog() {
	switch {
	case global.verbose:
		term.SetLevel(term.LevelDebug)
	case global.quiet:
		term.SetLevel(term.LevelWarn)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		term.Error(err)
		os.Exit(1)
	}
}
