package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/client"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
)

func newCreateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new hive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().CreateHive(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created hive %s\n", h.ID)
			renderState(cmd.OutOrStdout(), h.State)
			return nil
		},
	}
}

func newStateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "state <hive-id>",
		Short: "Show the current state of a hive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().GetHive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderState(cmd.OutOrStdout(), h.State)
			return nil
		},
	}
}

type actionFunc func(ctx context.Context, c *client.APIClient, hiveID string, args []string) (client.ActionResponse, error)

func newActCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "act",
		Short: "Perform an action on a hive",
	}

	sub := func(use, short string, args cobra.PositionalArgs, fn actionFunc) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := fn(cmd.Context(), opts.client(), args[0], args[1:])
				if err != nil {
					return err
				}
				renderAction(cmd.OutOrStdout(), resp)
				return nil
			},
		}
	}

	cmd.AddCommand(
		sub("bonus <hive-id>", "Collect the honey bonus", cobra.ExactArgs(1),
			func(ctx context.Context, c *client.APIClient, id string, _ []string) (client.ActionResponse, error) {
				return c.Bonus(ctx, id)
			}),
		sub("upgrade <hive-id>", "Upgrade the hive one level", cobra.ExactArgs(1),
			func(ctx context.Context, c *client.APIClient, id string, _ []string) (client.ActionResponse, error) {
				return c.Upgrade(ctx, id)
			}),
		sub("workers <hive-id> <count>", "Buy worker bees", cobra.ExactArgs(2),
			func(ctx context.Context, c *client.APIClient, id string, args []string) (client.ActionResponse, error) {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return client.ActionResponse{}, fmt.Errorf("invalid count %q", args[0])
				}
				return c.AddWorkers(ctx, id, n)
			}),
		sub("sell <hive-id> <resource> <amount>", "Sell honey, pollen or propolis", cobra.ExactArgs(3),
			func(ctx context.Context, c *client.APIClient, id string, args []string) (client.ActionResponse, error) {
				kind, amount, err := parseTrade(args)
				if err != nil {
					return client.ActionResponse{}, err
				}
				return c.Sell(ctx, id, string(kind), amount)
			}),
		sub("buy <hive-id> <resource> <amount>", "Buy honey from the market", cobra.ExactArgs(3),
			func(ctx context.Context, c *client.APIClient, id string, args []string) (client.ActionResponse, error) {
				kind, amount, err := parseTrade(args)
				if err != nil {
					return client.ActionResponse{}, err
				}
				return c.Buy(ctx, id, string(kind), amount)
			}),
	)
	return cmd
}

// parseTrade checks the resource name locally so typos get a suggestion
// without a round trip
func parseTrade(args []string) (domain.ResourceKind, float64, error) {
	kind, err := hive.ParseResource(args[0])
	if err != nil {
		return "", 0, err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid amount %q", args[1])
	}
	return kind, amount, nil
}

func newTipsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tips <hive-id>",
		Short: "Ask the advisor for honey production tips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().HiveTips(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTips(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func renderState(w io.Writer, s domain.HiveState) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Field", "Value"}))

	rows := [][]string{
		{"Honey", fmt.Sprintf("%.2f (%.2f/h)", s.Honey, s.HoneyPerHour)},
		{"Pollen", fmt.Sprintf("%.0f (%.2f/h)", s.Pollen, s.PollenPerHour)},
		{"Propolis", fmt.Sprintf("%.0f (%.2f/h)", s.Propolis, s.PropolisPerHour)},
		{"BeeCoins", fmt.Sprintf("%.0f", s.Currency)},
		{"Hive Level", fmt.Sprintf("%d", s.HiveLevel)},
		{"Worker Bees", fmt.Sprintf("%d/%d", s.WorkerBeeCount, s.MaxWorkerBeeCapacity)},
		{"Queen", queenText(s)},
		{"Prices", fmt.Sprintf("honey %.0f, pollen %.0f, propolis %.0f", s.Prices.Honey, s.Prices.Pollen, s.Prices.Propolis)},
	}
	for _, r := range rows {
		_ = table.Append(r)
	}
	_ = table.Render()
}

func queenText(s domain.HiveState) string {
	if !s.HasQueen {
		return "absent"
	}
	return fmt.Sprintf("next bee in %.0fs", s.QueenBirthCountdownSeconds)
}

func renderAction(w io.Writer, resp client.ActionResponse) {
	renderNotifications(w, resp.Notifications)
	renderState(w, resp.State)
}

func renderNotifications(w io.Writer, notes []domain.Notification) {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	for _, n := range notes {
		title := ok
		if n.Variant == domain.VariantDestructive {
			title = bad
		}
		title.Fprint(w, n.Title)
		fmt.Fprintf(w, " %s\n", n.Description)
	}
}

func renderTips(w io.Writer, resp aitips.Response) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(w, "Tips")
	for i, tip := range resp.OptimizationTips {
		fmt.Fprintf(w, "%d. %s\n", i+1, tip)
	}
	if resp.Reasoning != "" {
		heading.Fprintln(w, "Reasoning")
		fmt.Fprintln(w, resp.Reasoning)
	}
}
