// Command workbuddy is the terminal client for the WorkBuddy assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Akshaya1307/workbuddy/internal/app"
	"github.com/Akshaya1307/workbuddy/internal/config"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

type rootOptions struct {
	catalogFile string
	logLevel    string
	user        string
	plain       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "workbuddy",
		Short: "WorkBuddy - HR and IT assistant demo in your terminal",
		Long: `WorkBuddy answers leave, access, onboarding and HR policy questions
with simulated HR, IT and onboarding agents. Everything stays in memory.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "demo catalog YAML file (default: built-in, or $CATALOG_FILE)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.user, "user", "", "user id for the session (default: catalog default user)")
	root.PersistentFlags().BoolVar(&opts.plain, "plain", false, "print raw markdown instead of styled output")

	root.AddCommand(newChatCmd(opts), newAskCmd(opts))
	return root
}

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				return s.run(ctx, cmd.InOrStdin())
			})
		},
	}
}

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				return s.ask(ctx, strings.Join(args, " "))
			})
		},
	}
}

// withSession assembles the app from the environment plus flags and opens a
// session for fn.
func withSession(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *session) error) error {
	cfg := config.Load()
	if opts.catalogFile != "" {
		cfg.CatalogFile = opts.catalogFile
	}

	log, err := logger.NewStderr(opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := newSession(ctx, a, opts.user, newPrinter(cmd.OutOrStdout(), !opts.plain))
	if err != nil {
		return err
	}
	return fn(ctx, s)
}
