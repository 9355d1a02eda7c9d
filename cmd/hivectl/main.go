// Command hivectl inspects hive balance offline and drives hives on a
// running BuzzHive server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/BuzzHive_Go/internal/client"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "HIVECTL_API_URL"
	envAPIKey     = "API_KEY"
)

type options struct {
	apiURL  string
	apiKey  string
	timeout time.Duration
}

func (o *options) client() *client.APIClient {
	c := client.NewAPIClient(o.apiURL, o.apiKey)
	c.Client.Timeout = o.timeout
	return c
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "hivectl",
		Short: "BuzzHive command line",
		Long: `Inspect production rates and simulate hives offline, or create,
inspect and play hives on a running BuzzHive server.`,
		SilenceUsage: true,
	}

	apiURL := os.Getenv(envAPIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "BuzzHive API base URL (env "+envAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv(envAPIKey), "API key (env "+envAPIKey+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(
		newRatesCmd(),
		newSimulateCmd(),
		newCreateCmd(opts),
		newStateCmd(opts),
		newActCmd(opts),
		newTipsCmd(opts),
		newWatchCmd(opts),
		newDeadLettersCmd(),
	)
	return rootCmd
}
