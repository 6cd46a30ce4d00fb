package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "short password", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, gotHash)
			assert.NoError(t, CompareHash(gotHash, tt.password))
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	require.NoError(t, err)

	anotherHash, err := GetHash("another_password")
	require.NoError(t, err)

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{name: "matching password", hash: correctHash, password: "correct_password", shouldMatch: true},
		{name: "wrong password", hash: correctHash, password: "wrong_password", shouldMatch: false},
		{name: "different hash same password", hash: anotherHash, password: "correct_password", shouldMatch: false},
		{name: "empty password", hash: correctHash, password: "", shouldMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareHash(tt.hash, tt.password)
			if tt.shouldMatch {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
