package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"48/temp/a.json", "48/temp/a.json"},
		{"/48/temp/a.json", "48/temp/a.json"},
		{"./48//temp/./a.json", "48/temp/a.json"},
		{"48/temp/", "48/temp"},
		{"", ""},
	}
	for _, tt := range tests {
		got := CleanPath(tt.in)
		assert.Equal(t, tt.want, got, "CleanPath(%q)", tt.in)
		if got != "" {
			assert.True(t, ValidPath(got), "cleaned %q should be valid", got)
		}
	}
}

func TestValidPath(t *testing.T) {
	assert.True(t, ValidPath("48/temp/_pending_approvals/a.json"))
	for _, p := range []string{"", "/48/a.json", "48//a.json", "48/./a.json", "48/../a.json"} {
		assert.False(t, ValidPath(p), "ValidPath(%q)", p)
	}
}
