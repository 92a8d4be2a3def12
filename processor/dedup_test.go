package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Send the report", "send the report"},
		{"  Send   the  report.  ", "send the report"},
		{"SEND THE REPORT!!", "send the report"},
		{"send the report;", "send the report"},
		{"", ""},
		{"   ", ""},
		{"...", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestDedupSet_RejectsNormalizedDuplicates(t *testing.T) {
	d := NewDedupSet()
	assert.True(t, d.Add("Send the report"))
	assert.False(t, d.Add("send the report."))
	assert.False(t, d.Add("  SEND   THE REPORT  "))
	assert.True(t, d.Add("Book the meeting room"))
	assert.Equal(t, 2, d.Len())
}

func TestDedupSet_IgnoresEmptyDescriptions(t *testing.T) {
	d := NewDedupSet()
	assert.False(t, d.Add(""))
	assert.False(t, d.Add("  .  "))
	assert.Equal(t, 0, d.Len())
}
