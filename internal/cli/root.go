package cli

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "tienda [port]",
	Short: "Tienda - catalog, shared cart and orders over REST",
	Long: `Tienda serves the shop's REST API: product CRUD, one cart shared by
every client, and orders created from that cart.

The port to listen on comes from the first argument, then the PORT
environment variable, then 3001. If it is taken, the next free port is used
and written back to PORT.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// Execute runs the root command
func Execute() {
	useNumericDecimals()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// useNumericDecimals makes precio and total go over the wire (HTTP, Kafka,
// Elasticsearch, Redis) as JSON numbers instead of quoted strings.
func useNumericDecimals() {
	decimal.MarshalJSONWithoutQuotes = true
}
