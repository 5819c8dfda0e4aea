package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// secretRule is applied to the password of a Local account.
const secretRule = "notblank,max=100"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(passwordRule, models.Account{})
	return v
}

// passwordRule checks the password against the account type: Local accounts
// need a non-blank secret, Directory accounts must have none at all.
func passwordRule(sl validator.StructLevel) {
	acc, ok := sl.Current().Interface().(models.Account)
	if !ok {
		return
	}
	switch acc.Type {
	case models.Local:
		if acc.Password == nil {
			sl.ReportError(acc.Password, "Password", "password", "required", "")
			return
		}
		if err := sl.Validator().Var(*acc.Password, secretRule); err != nil {
			sl.ReportError(*acc.Password, "Password", "password", secretRule, "")
		}
	case models.Directory:
		if acc.Password != nil {
			sl.ReportError(*acc.Password, "Password", "password", "isdefault", "")
		}
	}
}

// IsPersistable reports whether acc may be written to durable storage:
// a non-blank login of at most 100 characters, a known type, and a password
// matching the type (a non-blank secret of at most 100 characters for Local
// accounts, nil for Directory accounts).
func IsPersistable(acc models.Account) bool {
	return validate.Struct(acc) == nil
}
