package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionAmountFromJSON(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    QuestionAmount
		wantErr bool
	}{
		{name: "number", body: `{"amount":7}`, want: 7},
		{name: "numeric string", body: `{"amount":" 12 "}`, want: 12},
		{name: "null", body: `{"amount":null}`, want: 0},
		{name: "missing", body: `{}`, want: 0},
		{name: "word", body: `{"amount":"many"}`, wantErr: true},
		{name: "fraction", body: `{"amount":2.5}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req GenerateRequest
			err := json.Unmarshal([]byte(tc.body), &req)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, req.Amount)
		})
	}
}

func TestQuestionAmountFromText(t *testing.T) {
	var amount QuestionAmount
	require.NoError(t, amount.UnmarshalText([]byte("3")))
	assert.Equal(t, QuestionAmount(3), amount)

	assert.Error(t, amount.UnmarshalText([]byte("three")))
}
