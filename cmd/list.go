package cmd

import (
	"strconv"

	"github.com/creativeprojects/mailfolder/folder"
	"github.com/creativeprojects/mailfolder/mailbox"
	"github.com/creativeprojects/mailfolder/store"
	"github.com/creativeprojects/mailfolder/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Display list of folders with message counts",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var history *store.BoltStore
	if config.History != "" {
		var err error
		history, err = store.NewBoltStore(config.History)
		if err != nil {
			term.Warnf("history not available: %s", err)
		} else {
			defer history.Close()
		}
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Folder", "Messages", "Unread", "Location"},
	})

	locals, err := folder.List(config.Maildir)
	if err != nil {
		term.Warnf("cannot list local folders: %s", err)
	}
	for _, info := range locals {
		mdir := folder.NewLocal(info.Path)
		status := mdir.Status()
		table.Data = append(table.Data, statusRow(status, "maildir"))
		recordSnapshot(history, status)
	}

	if len(config.Remote) > 0 {
		client, err := newProxyClient()
		if err != nil {
			term.Warnf("proxy not available: %s", err)
		} else {
			defer client.Close()
			for _, name := range config.Remote {
				mdir := folder.NewRemote(name, client)
				status, err := client.Status(name)
				if err != nil {
					term.Warnf("cannot get status of %q: %s", name, err)
					continue
				}
				mdir.SetStatus(status)
				table.Data = append(table.Data, statusRow(mdir.Status(), "imap"))
				recordSnapshot(history, status)
			}
		}
	}
	return table.Render()
}

func statusRow(status mailbox.Status, location string) []string {
	return []string{
		status.Name,
		strconv.FormatUint(uint64(status.Messages), 10),
		strconv.FormatUint(uint64(status.Unseen), 10),
		location,
	}
}

func recordSnapshot(history *store.BoltStore, status mailbox.Status) {
	if history == nil {
		return
	}
	if err := history.AddSnapshot(status.Name, status); err != nil {
		term.Warnf("cannot record history of %q: %s", status.Name, err)
	}
}
