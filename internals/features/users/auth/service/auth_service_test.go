package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+7 (701) 234-56-78", "77012345678"},
		{"87012345678", "77012345678"},
		{"77012345678", "77012345678"},
		{"7012345678", "77012345678"},
		{"8 (702) 345-67-89", "77023456789"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestGenerateSMSCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateSMSCode()
		require.Len(t, code, 4)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q has non-digit", code)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestSendSMSCodeMockMode(t *testing.T) {
	// Without SMS_API_ID the gateway is mocked and always succeeds.
	res := SendSMSCode("+7 (701) 234-56-78", "1234")
	assert.True(t, res.Success)
}
