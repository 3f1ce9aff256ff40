package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"John.Doe+work@googlemail.com", "johndoe@gmail.com"},
		{"JOHN@EXAMPLE.COM", "john@example.com"},
		{"j.o.h.n@gmail.com", "john@gmail.com"},
		{"j.o.h.n@yahoo.com", "j.o.h.n@yahoo.com"}, // dots matter outside gmail
		{"user+tag@example.com", "user@example.com"},
		{"nodomain", "nodomain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.input), "input %q", tt.input)
	}
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", EmailDomain("a@Example.Com"))
	assert.Equal(t, "", EmailDomain("not-an-email"))
	assert.Equal(t, "", EmailDomain(""))
}

func TestIsGenericDomain(t *testing.T) {
	assert.True(t, IsGenericDomain("gmail.com"))
	assert.True(t, IsGenericDomain("Hotmail.com"))
	assert.False(t, IsGenericDomain("acme-corp.com"))
	assert.False(t, IsGenericDomain(""))
}

func TestAddGenericDomains(t *testing.T) {
	assert.False(t, IsGenericDomain("freemail.example"))
	AddGenericDomains([]string{" Freemail.Example ", ""})
	assert.True(t, IsGenericDomain("freemail.example"))
}
