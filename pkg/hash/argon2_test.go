package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesPHCFormat(t *testing.T) {
	encoded, err := HashPassword("secret1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v="))
	require.Len(t, strings.Split(encoded, "$"), 6)
}

func TestHashPassword_NeverEqualsPlaintext(t *testing.T) {
	for _, password := range []string{"secret1", "a", "", "correct horse battery staple"} {
		encoded, err := HashPassword(password)
		require.NoError(t, err)
		require.NotEqual(t, password, encoded)
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	encoded, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("secret1", encoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	encoded, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("secret2", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!!$aGFzaA",
	}
	for _, encoded := range cases {
		_, err := VerifyPassword("secret1", encoded)
		require.Error(t, err, "hash %q", encoded)
	}
}
