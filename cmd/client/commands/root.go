// Package commands implements the cobra command tree of the client.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/accountkeeper/internal/app"
	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/logger"
)

const closeTimeout = 5 * time.Second

// cli carries state shared by all subcommands of one invocation.
type cli struct {
	opts *config.Options
	log  *logger.ZapLogger
	app  *app.App
}

func newCLI() *cli {
	opts := config.Default()
	opts.LogLevel = "warn"
	return &cli{opts: opts, log: logger.New()}
}

// open resolves the configuration and loads the account store.
func (c *cli) open(ctx context.Context) error {
	if err := config.Resolve(c.opts); err != nil {
		return err
	}
	if err := c.log.Init(c.opts.LogLevel); err != nil {
		return err
	}
	a, err := app.New(ctx, c.opts, c.log.Log)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

// close disposes the store, if one was opened.
func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	err := c.app.Close(ctx)
	if err != nil {
		c.log.Log.Error("failed to close account store", zap.Error(err))
	}
	_ = c.log.Log.Sync()
	c.app = nil
	return err
}

// Execute runs the client with os.Args.
func Execute(version, buildDate string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newCLI()
	root := newRootCmd(c)
	root.Version = fmt.Sprintf("%s (built %s)", version, buildDate)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:          "accountkeeper",
		Short:        "Manage LDAP and local account records",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.Backend, "backend", c.opts.Backend, "storage backend: memory | file | sqlite | postgres | redis")
	flags.StringVarP(&c.opts.DSN, "dsn", "d", c.opts.DSN, "storage location (dir, db file, postgres dsn or redis url)")
	flags.StringVar(&c.opts.StorageKey, "key", c.opts.StorageKey, "storage key for the account snapshot")
	flags.StringVar(&c.opts.LogLevel, "log-level", c.opts.LogLevel, "log level")
	flags.StringVarP(&c.opts.Config, "config", "c", c.opts.Config, "path to config file")

	root.AddCommand(
		listCmd(c),
		addCmd(c),
		setCmd(c),
		removeCmd(c),
		checkCmd(c),
		shellCmd(c),
	)
	return root
}
