package loginpayload

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"":                     DefaultRedirect,
		"/admin/articles?p=2":  "/admin/articles?p=2",
		"//evil.example":       DefaultRedirect,
		"https://evil.example": DefaultRedirect,
		"/\\evil.example":      DefaultRedirect,
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeRedirect(in), in)
	}
}

func TestLoginRequestBind(t *testing.T) {
	r := httptest.NewRequest("POST", "/admin/login", nil)

	l := &LoginRequest{SecretKey: "  key "}
	assert.NoError(t, l.Bind(r))
	assert.Equal(t, "key", l.SecretKey)

	assert.Error(t, (&LoginRequest{SecretKey: " "}).Bind(r))
}
