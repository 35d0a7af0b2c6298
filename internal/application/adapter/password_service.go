// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength returns ErrWeakPassword for passwords that are too weak.
	ValidatePasswordStrength(password string) error
}
