package api

import (
	"errors"
	"net/mail"
	"strings"
)

// Walidacja żądań: reguły sprawdzane po kolei, pierwsze naruszenie wygrywa
// i żądanie nie dociera do żadnej operacji na stanie.

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("Name is required")
	}
	if !isValidEmail(r.Email) {
		return errors.New("Please enter a valid email")
	}
	if len(r.Password) < 6 {
		return errors.New("Password must be at least 6 characters long")
	}
	if r.Password != r.ConfirmPassword {
		return errors.New("Passwords do not match")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if !isValidEmail(r.Email) {
		return errors.New("Please enter a valid email")
	}
	if r.Password == "" {
		return errors.New("Password is required")
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// ParseAddress akceptuje formę "Nazwa <adres>"; wymagamy gołego adresu
	return err == nil && addr.Address == email
}
