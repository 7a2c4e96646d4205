package cmd

import (
	"errors"

	"github.com/creativeprojects/mailfolder/mailbox"
	"github.com/creativeprojects/mailfolder/term"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <message-file> <folder>",
	Short: "Save a message file into a folder",
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New("missing message file and folder name")
	}
	source := args[0]
	mdir, client, err := openFolder(args[1])
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}
	if config.RateLimit > 0 {
		mdir.SetRateLimit(config.RateLimit, 64*1024)
	}

	err = mdir.SaveMessage(mailbox.NewFromFile(source))
	if err != nil {
		return err
	}
	term.Infof("message saved into %q", mdir.Name())
	return nil
}
