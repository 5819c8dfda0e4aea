package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// errIncomplete is returned when the edited account fails validation. The
// store keeps such records in memory only, so they are lost when the
// command exits.
var errIncomplete = errors.New("account is incomplete and was not stored")

// accountFlags are the field flags shared by add and set.
type accountFlags struct {
	typ        string
	labels     string
	login      string
	password   string
	noPassword bool
}

func (f *accountFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.typ, "type", "", "account type: LDAP | LOCAL")
	flags.StringVar(&f.labels, "labels", "", `labels separated by ";"`)
	flags.StringVar(&f.login, "login", "", "login")
	flags.StringVar(&f.password, "password", "", "password (LOCAL accounts only)")
	flags.BoolVar(&f.noPassword, "no-password", false, "clear the password")
	cmd.MarkFlagsMutuallyExclusive("password", "no-password")
}

// apply copies the flags that were set on cmd into acc. Changing the type
// resets the password the same way the interactive shell does.
func (f *accountFlags) apply(cmd *cobra.Command, acc *models.Account) error {
	flags := cmd.Flags()

	if flags.Changed("type") {
		typ := models.AccountType(strings.ToUpper(f.typ))
		if !typ.Valid() {
			return fmt.Errorf("unknown account type %q", f.typ)
		}
		if typ != acc.Type {
			acc.Type = typ
			if typ == models.Directory {
				acc.Password = nil
			} else {
				acc.Password = models.StringPtr("")
			}
		}
	}
	if flags.Changed("labels") {
		acc.Labels = models.ParseLabels(f.labels)
	}
	if flags.Changed("login") {
		acc.Login = f.login
	}
	if flags.Changed("password") {
		acc.Password = models.StringPtr(f.password)
	}
	if f.noPassword {
		acc.Password = nil
	}
	return nil
}

// save upserts acc and reports whether it reached durable storage.
func save(cmd *cobra.Command, c *cli, acc models.Account) error {
	if err := c.app.Store.Upsert(cmd.Context(), acc); err != nil {
		return err
	}
	if !c.app.Store.IsPersistable(acc) {
		return fmt.Errorf("%s: %w", acc.ID, errIncomplete)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "saved", acc.ID)
	return nil
}

func setCmd(c *cli) *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Create or update the account with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, ok := c.app.Store.Get(args[0])
			if !ok {
				acc = models.Account{
					ID:       args[0],
					Labels:   []models.Label{},
					Type:     models.Local,
					Password: models.StringPtr(""),
				}
			}
			if err := f.apply(cmd, &acc); err != nil {
				return err
			}
			return save(cmd, c, acc)
		},
	}
	f.register(cmd)
	return cmd
}

func addCmd(c *cli) *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account with a generated id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.app.Store

			id, err := store.AddEmpty(cmd.Context())
			if err != nil {
				return err
			}
			acc, _ := store.Get(id)
			if err := f.apply(cmd, &acc); err != nil {
				return err
			}
			return save(cmd, c, acc)
		},
	}
	f.register(cmd)
	return cmd
}
