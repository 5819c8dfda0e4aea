package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/accountkeeper/internal/models"
)

func fixedID() string { return "generated" }

func TestDecodeAccounts_TopLevelGarbage(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty", "", false},
		{"whitespace", "   ", true},
		{"not json", "definitely not json", true},
		{"truncated", `[{"id":"a"`, true},
		{"object", `{"id":"a"}`, true},
		{"string", `"accounts"`, true},
		{"number", `42`, true},
		{"null", `null`, true},
		{"empty list", `[]`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeAccounts(tc.raw, fixedID)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeAccounts_NonObjectElementsGetDefaults(t *testing.T) {
	got, err := decodeAccounts(`[1, "x", null, [], true]`, sequentialTestIDs())
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, acc := range got {
		assert.NotEmpty(t, acc.ID, "element %d", i)
		assert.Equal(t, models.Local, acc.Type)
		assert.Equal(t, "", acc.Login)
		require.NotNil(t, acc.Password)
		assert.Equal(t, "", *acc.Password)
		assert.NotNil(t, acc.Labels)
		assert.Empty(t, acc.Labels)
	}
}

func TestDecodeAccounts_FieldFallbacks(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want models.Account
	}{
		{
			name: "valid local",
			raw:  `[{"id":"a","labels":[{"text":"x"}],"type":"LOCAL","login":"bob","password":"pw"}]`,
			want: models.Account{ID: "a", Labels: []models.Label{{Text: "x"}}, Type: models.Local, Login: "bob", Password: models.StringPtr("pw")},
		},
		{
			name: "missing fields",
			raw:  `[{}]`,
			want: models.Account{ID: "generated", Labels: []models.Label{}, Type: models.Local, Login: "", Password: models.StringPtr("")},
		},
		{
			name: "wrong field types",
			raw:  `[{"id":7,"labels":"x","type":3,"login":false,"password":12}]`,
			want: models.Account{ID: "generated", Labels: []models.Label{}, Type: models.Local, Login: "", Password: models.StringPtr("")},
		},
		{
			name: "null id and login",
			raw:  `[{"id":null,"login":null}]`,
			want: models.Account{ID: "generated", Labels: []models.Label{}, Type: models.Local, Login: "", Password: models.StringPtr("")},
		},
		{
			name: "explicit null password stays null",
			raw:  `[{"id":"a","type":"LOCAL","login":"bob","password":null}]`,
			want: models.Account{ID: "a", Labels: []models.Label{}, Type: models.Local, Login: "bob"},
		},
		{
			name: "directory password forced null",
			raw:  `[{"id":"a","type":"LDAP","login":"bob","password":"leaked"}]`,
			want: models.Account{ID: "a", Labels: []models.Label{}, Type: models.Directory, Login: "bob"},
		},
		{
			name: "unknown type defaults to local",
			raw:  `[{"id":"a","type":"ldap","login":"bob","password":"pw"}]`,
			want: models.Account{ID: "a", Labels: []models.Label{}, Type: models.Local, Login: "bob", Password: models.StringPtr("pw")},
		},
		{
			name: "labels filtered",
			raw:  `[{"id":"a","labels":[{"text":"ok"},{"text":1},"str",null,{},{"text":"two","extra":true}]}]`,
			want: models.Account{ID: "a", Labels: []models.Label{{Text: "ok"}, {Text: "two"}}, Type: models.Local, Password: models.StringPtr("")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeAccounts(tc.raw, fixedID)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestDecodeAccounts_DuplicateIDsKeepFirst(t *testing.T) {
	got, err := decodeAccounts(`[{"id":"a","login":"first"},{"id":"b"},{"id":"a","login":"second"}]`, fixedID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Login)
	assert.Equal(t, "b", got[1].ID)
}

func sequentialTestIDs() func() string {
	n := 0
	return func() string {
		n++
		return string(rune('a' + n))
	}
}
