package main

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"usermgmt/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
}

func TestPromptConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		got := promptConfirm(bufio.NewReader(strings.NewReader(tt.input)), io.Discard, "Delete?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFormatUserListText(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	formatUserListText(buf, &domain.UserListResponse{
		Users: []domain.User{
			{ID: "1", Name: "John Doe", Email: "john@example.com"},
			{ID: "2", Name: "Jane Doe", Email: "jane@example.com"},
		},
		Total: 2,
		Page:  1,
		Size:  10,
	})

	out := buf.String()
	assert.Contains(t, out, "john@example.com")
	assert.Contains(t, out, "jane@example.com")
	assert.NotContains(t, out, "Page", "a single page has no pagination footer")

	buf.Reset()
	formatUserListText(buf, &domain.UserListResponse{Users: []domain.User{}, Total: 25, Page: 3, Size: 10})
	assert.Contains(t, buf.String(), "No users found.")
	assert.Contains(t, buf.String(), "Page 3 of 3 (25 users)")
}
