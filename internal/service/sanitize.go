package service

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/atinyakov/accountkeeper/internal/models"
)

var errNotList = errors.New("stored accounts are not a JSON array")

// decodeAccounts turns previously persisted text into accounts. Only a wrong
// top-level shape yields an error; every malformed field falls back to a
// default, and elements that are not objects become fully defaulted records.
// A later element repeating an earlier id is dropped.
func decodeAccounts(raw string, newID func() string) ([]models.Account, error) {
	if raw == "" {
		return []models.Account{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []models.Account{}, err
	}
	if items == nil {
		return []models.Account{}, errNotList
	}

	accounts := make([]models.Account, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		acc := sanitizeAccount(item, newID)
		if _, dup := seen[acc.ID]; dup {
			continue
		}
		seen[acc.ID] = struct{}{}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func sanitizeAccount(item json.RawMessage, newID func() string) models.Account {
	var fields map[string]json.RawMessage
	if !isObject(item) || json.Unmarshal(item, &fields) != nil {
		fields = nil
	}

	acc := models.Account{
		Labels: sanitizeLabels(fields["labels"]),
		Type:   models.Local,
	}

	if id, ok := asString(fields["id"]); ok {
		acc.ID = id
	} else {
		acc.ID = newID()
	}

	rawType, _ := asString(fields["type"])
	if rawType == string(models.Directory) {
		acc.Type = models.Directory
	}

	acc.Login, _ = asString(fields["login"])

	switch pw, ok := asString(fields["password"]); {
	case acc.Type == models.Directory:
		acc.Password = nil
	case ok:
		acc.Password = &pw
	case isNull(fields["password"]):
		acc.Password = nil
	default:
		acc.Password = models.StringPtr("")
	}
	return acc
}

func sanitizeLabels(raw json.RawMessage) []models.Label {
	labels := []models.Label{}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return labels
	}
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var fields map[string]json.RawMessage
		if json.Unmarshal(item, &fields) != nil {
			continue
		}
		if text, ok := asString(fields["text"]); ok {
			labels = append(labels, models.Label{Text: text})
		}
	}
	return labels
}

// asString decodes raw only when it holds a JSON string; null and every
// other JSON type report false.
func asString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
