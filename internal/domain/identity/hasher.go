package identity

// PasswordHasher abstracts secret hashing so the domain never sees bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns an error when the password does not match the hash.
	// The error carries no detail about why.
	Verify(password, hash string) error
}
