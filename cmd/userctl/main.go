package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usermgmt/internal/apiclient"
	"usermgmt/internal/config"
	"usermgmt/internal/errfmt"
	"usermgmt/internal/logger"

	"github.com/spf13/cobra"
)

var (
	flagAPIURL   string
	flagPageSize int
	flagFormat   string
	flagTimeout  time.Duration
	flagVerbose  bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

var (
	cfg    *config.Config
	log    logger.Logger
	client *apiclient.Client
)

func main() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", cfg.APIURL, "root URL of the user API")
	rootCmd.PersistentFlags().IntVar(&flagPageSize, "page-size", cfg.PageSize, "users per page")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", errfmt.Format(err))
		}
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "userctl",
	Short:         "Manage users through the user management API",
	Long:          "userctl talks to the /api/v1/users REST API, either one command at a time or from an interactive shell.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		if flagPageSize < 1 || flagPageSize > 100 {
			return fmt.Errorf("invalid page size %d: must be between 1 and 100", flagPageSize)
		}

		log = logger.NewNop()
		if flagVerbose {
			log = logger.New(cfg)
		}

		client = apiclient.New(flagAPIURL,
			apiclient.WithTimeout(flagTimeout),
			apiclient.WithLogger(log),
			apiclient.WithRequestID(),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log API requests and failures to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(shellCmd)
}
