package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Name:            "Jan Kowalski",
		Email:           "jan@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantMsg string
	}{
		{"missing name", func(r *RegisterRequest) { r.Name = "  " }, "Name is required"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "Please enter a valid email"},
		{"empty email", func(r *RegisterRequest) { r.Email = "" }, "Please enter a valid email"},
		{"short password", func(r *RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" }, "Password must be at least 6 characters long"},
		{"mismatched confirmation", func(r *RegisterRequest) { r.ConfirmPassword = "different" }, "Passwords do not match"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			require.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	valid := LoginRequest{Email: "jan@example.com", Password: "secret123"}
	require.NoError(t, valid.Validate())

	bad := LoginRequest{Email: "oops", Password: "secret123"}
	require.EqualError(t, bad.Validate(), "Please enter a valid email")

	noPass := LoginRequest{Email: "jan@example.com"}
	require.EqualError(t, noPass.Validate(), "Password is required")
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, isValidEmail("a@b.pl"))
	require.False(t, isValidEmail(""))
	require.False(t, isValidEmail("plain"))
	// Forma z nazwą wyświetlaną nie przechodzi - chcemy goły adres
	require.False(t, isValidEmail("Jan <jan@example.com>"))
}
