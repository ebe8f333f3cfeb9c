package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{"simple lowercase", "alice", true},
		{"mixed case", "AlIcE42", true},
		{"digits only", "1234", true},
		{"empty", "", false},
		{"space inside", "al ice", false},
		{"punctuation", "alice!", false},
		{"unicode", "ålice", false},
		{"blocked value", "admin", false},
		{"blocked value upper case", "ADMIN", false},
		{"sentinel value", "null", false},
		{"blocked with padding", " admin ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidUsername(tt.username))
		})
	}
}

func TestValidSessionCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"valid code", "AB23CD", true},
		{"valid lowercase", "ab23cd", true},
		{"too short", "AB23C", false},
		{"too long", "AB23CDE", false},
		{"empty", "", false},
		{"bad character", "AB23C!", false},
		{"blocked value padded to six", "system", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSessionCode(tt.code))
		})
	}
}
