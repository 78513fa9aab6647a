package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2025-03-09", "2025-03-09T10:00:00Z", "2025-03-09 10:00:00", "2025-03-09T10:00"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 9, got.Day())
	}

	_, err := ParseDate("next sunday")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var body struct {
		Date *Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-03-09"}`), &body))
	require.NotNil(t, body.Date.Ptr())
	assert.Equal(t, "2025-03-09", body.Date.Ptr().Format("2006-01-02"))

	body.Date = nil
	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &body))
	assert.Nil(t, body.Date.Ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"soon"}`), &body))
}

func TestNormalizeStartTime(t *testing.T) {
	cases := map[string]string{
		"10:30":            "10:30",
		"9:05":             "09:05",
		"09:05:00":         "09:05",
		"6:15 PM":          "18:15",
		"  ":               "",
		"after the sermon": "after the sermon",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStartTime(in), in)
	}
}
