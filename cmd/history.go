package cmd

import (
	"errors"
	"strconv"

	"github.com/creativeprojects/mailfolder/store"
	"github.com/creativeprojects/mailfolder/term"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const dateFormat = "2006-01-02 15:04:05 MST"

var historyCmd = &cobra.Command{
	Use:   "history <folder>",
	Short: "Display recorded message counts of a folder",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("missing folder name")
	}
	if config.History == "" {
		return errors.New("no history file in configuration")
	}
	history, err := store.NewBoltStore(config.History)
	if err != nil {
		return err
	}
	defer history.Close()

	snapshots, err := history.History(args[0])
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		term.Warnf("no history recorded for %q", args[0])
		return nil
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Date", "Messages", "Unread"},
	})
	for _, snapshot := range snapshots {
		table.Data = append(table.Data, []string{
			snapshot.Time.Format(dateFormat),
			strconv.FormatUint(uint64(snapshot.Messages), 10),
			strconv.FormatUint(uint64(snapshot.Unseen), 10),
		})
	}
	return table.Render()
}
