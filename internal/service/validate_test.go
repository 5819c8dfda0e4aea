package service

import (
	"strings"
	"testing"

	"github.com/atinyakov/accountkeeper/internal/models"
)

func TestIsPersistable(t *testing.T) {
	long := strings.Repeat("x", 101)
	max := strings.Repeat("x", 100)
	pw := models.StringPtr

	cases := []struct {
		name string
		acc  models.Account
		want bool
	}{
		{"valid local", models.Account{Type: models.Local, Login: "bob", Password: pw("secret")}, true},
		{"valid directory", models.Account{Type: models.Directory, Login: "bob"}, true},
		{"empty login", models.Account{Type: models.Local, Login: "", Password: pw("secret")}, false},
		{"blank login", models.Account{Type: models.Local, Login: "   ", Password: pw("secret")}, false},
		{"login at limit", models.Account{Type: models.Local, Login: max, Password: pw("secret")}, true},
		{"login too long", models.Account{Type: models.Local, Login: long, Password: pw("secret")}, false},
		{"unknown type", models.Account{Type: "SSO", Login: "bob"}, false},
		{"empty type", models.Account{Login: "bob", Password: pw("secret")}, false},
		{"local nil password", models.Account{Type: models.Local, Login: "bob"}, false},
		{"local empty password", models.Account{Type: models.Local, Login: "bob", Password: pw("")}, false},
		{"local blank password", models.Account{Type: models.Local, Login: "bob", Password: pw(" \t")}, false},
		{"local password at limit", models.Account{Type: models.Local, Login: "bob", Password: pw(max)}, true},
		{"local password too long", models.Account{Type: models.Local, Login: "bob", Password: pw(long)}, false},
		{"directory empty password", models.Account{Type: models.Directory, Login: "bob", Password: pw("")}, false},
		{"directory with password", models.Account{Type: models.Directory, Login: "bob", Password: pw("secret")}, false},
		{"directory empty login", models.Account{Type: models.Directory, Login: ""}, false},
		{"labels do not matter", models.Account{Type: models.Local, Login: "bob", Password: pw("s"), Labels: []models.Label{{Text: ""}}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsPersistable(tc.acc); got != tc.want {
				t.Errorf("IsPersistable(%+v) = %v; want %v", tc.acc, got, tc.want)
			}
		})
	}
}

func TestDirectoryPasswordInvariant(t *testing.T) {
	acc := models.Account{ID: "1", Type: models.Directory, Login: "alice", Password: models.StringPtr("x")}
	if IsPersistable(acc) {
		t.Fatal("directory account with a password must not be persistable")
	}
	acc.Password = nil
	if !IsPersistable(acc) {
		t.Fatal("directory account without a password must be persistable")
	}
}
