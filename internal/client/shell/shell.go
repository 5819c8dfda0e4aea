// Package shell implements the interactive account editing loop of the
// client.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// Store is the subset of the account store the shell drives.
type Store interface {
	Accounts() []models.Account
	Get(id string) (models.Account, bool)
	IsPersistable(models.Account) bool
	AddEmpty(ctx context.Context) (string, error)
	Upsert(ctx context.Context, acc models.Account) error
	Remove(ctx context.Context, id string) error
}

// Shell reads commands line by line and applies them to a Store.
type Shell struct {
	store Store
	sc    *bufio.Scanner
	out   io.Writer
}

// New returns a Shell reading from in and writing to out.
func New(store Store, in io.Reader, out io.Writer) *Shell {
	return &Shell{store: store, sc: bufio.NewScanner(in), out: out}
}

// Run executes commands until "exit", end of input or ctx cancellation.
// Store errors are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) {
	for ctx.Err() == nil {
		fmt.Fprint(s.out, "accounts> ")
		if !s.sc.Scan() {
			return
		}
		args := strings.Fields(s.sc.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Fprintln(s.out, "Available commands: help, list, add, get <id>, edit <id>, delete <id>, exit")
		case "list":
			s.list()
		case "add":
			s.add(ctx)
		case "get":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "Usage: get <id>")
				continue
			}
			s.get(args[1])
		case "edit":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "Usage: edit <id>")
				continue
			}
			s.edit(ctx, args[1])
		case "delete":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "Usage: delete <id>")
				continue
			}
			s.delete(ctx, args[1])
		case "exit":
			fmt.Fprintln(s.out, "Bye")
			return
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (s *Shell) list() {
	accounts := s.store.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts")
		return
	}
	fmt.Fprintln(s.out, "Stored accounts:")
	for _, a := range accounts {
		fmt.Fprintf(s.out, "ID: %s\nType: %s\nLogin: %s\nLabels: %s\nSaved: %s\n---\n",
			a.ID, a.Type, a.Login, models.FormatLabels(a.Labels), yesNo(s.store.IsPersistable(a)))
	}
}

func (s *Shell) add(ctx context.Context) {
	id, err := s.store.AddEmpty(ctx)
	if err != nil {
		fmt.Fprintln(s.out, "add failed:", err)
		if id == "" {
			return
		}
	}
	fmt.Fprintln(s.out, "Account created:", id)
	s.edit(ctx, id)
}

func (s *Shell) get(id string) {
	acc, ok := s.store.Get(id)
	if !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	b, _ := json.MarshalIndent(acc, "", "  ")
	fmt.Fprintln(s.out, string(b))
}

func (s *Shell) edit(ctx context.Context, id string) {
	acc, ok := s.store.Get(id)
	if !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	acc = PromptAccount(s.sc, s.out, acc)
	if err := s.store.Upsert(ctx, acc); err != nil {
		fmt.Fprintln(s.out, "save failed:", err)
		return
	}
	if s.store.IsPersistable(acc) {
		fmt.Fprintln(s.out, "Account saved")
	} else {
		fmt.Fprintln(s.out, "Account updated, but it is incomplete and will not be stored until fixed")
	}
}

func (s *Shell) delete(ctx context.Context, id string) {
	if _, ok := s.store.Get(id); !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	if err := s.store.Remove(ctx, id); err != nil {
		fmt.Fprintln(s.out, "delete failed:", err)
		return
	}
	fmt.Fprintln(s.out, "Account deleted")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
