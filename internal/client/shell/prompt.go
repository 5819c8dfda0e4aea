package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// PromptAccount asks for every editable field of current, one line each.
// An empty answer keeps the current value. Switching to a Directory account
// clears the password; switching to Local starts from an empty one.
func PromptAccount(sc *bufio.Scanner, out io.Writer, current models.Account) models.Account {
	acc := current.Clone()

	fmt.Fprintf(out, "Enter type (LDAP/LOCAL) [%s]: ", acc.Type)
	if typ := readLine(sc); typ != "" {
		switch models.AccountType(strings.ToUpper(typ)) {
		case models.Directory:
			acc.Type = models.Directory
		case models.Local:
			acc.Type = models.Local
		default:
			fmt.Fprintf(out, "Unknown type %q, keeping %s\n", typ, acc.Type)
		}
	}

	fmt.Fprintf(out, "Enter labels separated by ; [%s]: ", models.FormatLabels(acc.Labels))
	if labels := readLine(sc); labels != "" {
		acc.Labels = models.ParseLabels(labels)
	}

	fmt.Fprintf(out, "Enter login [%s]: ", acc.Login)
	if login := readLine(sc); login != "" {
		acc.Login = login
	}

	switch acc.Type {
	case models.Directory:
		acc.Password = nil
	default:
		if current.Type != models.Local || acc.Password == nil {
			acc.Password = models.StringPtr("")
		}
		fmt.Fprint(out, "Enter password (leave empty to keep current): ")
		if pw := readLine(sc); pw != "" {
			acc.Password = models.StringPtr(pw)
		}
	}

	return acc
}

func readLine(sc *bufio.Scanner) string {
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
