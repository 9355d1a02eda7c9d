package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/BuzzHive_Go/internal/bootstrap"
	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
)

func newDeadLettersCmd() *cobra.Command {
	var hiveID string

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = config.DefaultLogDir
	}

	cmd := &cobra.Command{
		Use:   "deadletters [file]",
		Short: "List notifications the server failed to mirror",
		Long: `Read the server's dead-letter file and list every notification that
could not be delivered to the webhook. Defaults to the file in LOG_DIR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(logDir, bootstrap.DeadLetterFileName)
			if len(args) == 1 {
				path = args[0]
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			entries, err := event.ReadDeadLetters(f)
			if err != nil {
				return err
			}
			return renderDeadLetters(cmd.OutOrStdout(), entries, hiveID)
		},
	}

	cmd.Flags().StringVar(&hiveID, "hive", "", "Only show entries for this hive")
	return cmd
}

func renderDeadLetters(w io.Writer, entries []event.DeadLetterEntry, hiveID string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Time", "Hive", "Type", "Title", "Attempts", "Error"}),
	)

	shown := 0
	for _, e := range entries {
		if hiveID != "" && e.HiveID != hiveID {
			continue
		}
		var title string
		if e.Event.Type == event.NotificationRaised {
			if n, err := event.DecodePayload[domain.Notification](e.Event.Payload); err == nil {
				title = n.Title
			}
		}
		_ = table.Append([]string{
			e.Timestamp.Format(time.RFC3339),
			e.HiveID,
			string(e.Event.Type),
			title,
			fmt.Sprintf("%d", e.Attempts),
			e.LastError,
		})
		shown++
	}

	if shown == 0 {
		_, err := fmt.Fprintln(w, "No dead letters.")
		return err
	}
	return table.Render()
}
