package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-pepper")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.NotEmpty(t, parts[4], "salt")
			require.NotEmpty(t, parts[5], "hash")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("same-password", a))
	require.NoError(t, VerifyPassword("same-password", b))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	require.ErrorIs(t, VerifyPassword("battery staple", hash), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword("", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	for name, encoded := range map[string]string{
		"empty":         "",
		"not phc":       "plaintext",
		"wrong algo":    "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"wrong version": "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"bad params":    "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA",
		"bad salt":      "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"bad hash":      "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",
	} {
		t.Run(name, func(t *testing.T) {
			err := VerifyPassword("whatever", encoded)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestPepperChangesHash(t *testing.T) {
	hash, err := HashPassword("peppered")
	require.NoError(t, err)

	original := pepperPath
	t.Cleanup(func() { SetPepperPath(original) })

	SetPepperPath(filepath.Join(t.TempDir(), "other-pepper"))
	require.ErrorIs(t, VerifyPassword("peppered", hash), ErrPasswordMismatch)
}

func TestLoadPepper_PersistsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	p1, err := readOrCreatePepper(path)
	require.NoError(t, err)
	require.FileExists(t, path)

	p2, err := readOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}

func TestLoadPepper_RejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := readOrCreatePepper(path)
	require.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(16)
	require.NoError(t, err)
	require.Len(t, pw, 16)

	other, err := GeneratePassword(16)
	require.NoError(t, err)
	require.NotEqual(t, pw, other)

	_, err = GeneratePassword(0)
	require.Error(t, err)
}
