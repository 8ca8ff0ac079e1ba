package library

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchUnmarshalJSON(t *testing.T) {
	cases := []struct {
		body        string
		author      *string
		description *string
	}{
		{`{}`, nil, nil},
		{`null`, nil, nil},
		{`{"author":"a"}`, strPtr("a"), nil},
		{`{"author":null}`, strPtr(""), nil},
		{`{"description": null ,"id":"x","createdAt":"2000-01-01T00:00:00Z"}`, nil, strPtr("")},
	}
	for _, tc := range cases {
		var p Patch
		require.NoError(t, json.Unmarshal([]byte(tc.body), &p), tc.body)
		require.Equal(t, tc.author, p.Author, tc.body)
		require.Equal(t, tc.description, p.Description, tc.body)
	}

	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"author":null}`), &p))
	require.ErrorIs(t, ValidatePatch(p), ErrValidation)

	for _, bad := range []string{`{"author":5}`, `{"description":{}}`, `[]`, `{"author":`} {
		require.Error(t, json.Unmarshal([]byte(bad), &p), bad)
	}
}

func strPtr(s string) *string { return &s }
