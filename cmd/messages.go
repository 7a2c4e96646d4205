package cmd

import (
	"errors"

	"github.com/creativeprojects/mailfolder/mailbox"
	"github.com/creativeprojects/mailfolder/term"
	"github.com/spf13/cobra"
)

var messagesCmd = &cobra.Command{
	Use:   "messages <folder>",
	Short: "Display every message of a folder",
	RunE:  runMessages,
}

func init() {
	rootCmd.AddCommand(messagesCmd)
}

func runMessages(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("missing folder name")
	}
	mdir, client, err := openFolder(args[0])
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	messages, err := mdir.Messages()
	if err != nil {
		return err
	}
	for _, message := range messages {
		marker := " "
		if message.Unread {
			marker = "N"
		}
		term.Infof("%s %s", marker, message.Path)
	}
	// count from the listing itself: a remote folder has no count cache of
	// its own to ask here
	status := mailbox.Count(mdir.Name(), messages)
	term.Infof("%d messages, %d unread", status.Messages, status.Unseen)
	return nil
}
