package password_test

import (
	"strings"
	"testing"

	"guesthouse/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "front desk password", input: "Reception#2026"},
		{name: "unicode", input: "Akwaaba-ɛ-2026"},
		{name: "exactly the limit", input: strings.Repeat("a", 72)},
		{name: "empty", input: "", wantErr: password.ErrEmptyPassword},
		{name: "over the limit", input: strings.Repeat("a", 73), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.input, hashed)
			assert.NoError(t, password.Verify(tt.input, hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("Reception#2026")
	require.NoError(t, err)

	second, err := password.Hash("Reception#2026")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("Reception#2026")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "wrong password", password: "reception#2026", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "no stored hash", password: "Reception#2026", hash: "", wantErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, password.Verify(tt.password, tt.hash), tt.wantErr)
		})
	}

	t.Run("corrupt hash", func(t *testing.T) {
		err := password.Verify("Reception#2026", "not-a-bcrypt-hash")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, password.ErrInvalidPassword)
	})
}
