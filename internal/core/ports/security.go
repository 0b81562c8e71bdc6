package ports

// FieldCipher encrypts and decrypts individual sensitive bank-account field
// values. Tokens are self-describing (nonce + ciphertext), so decryption
// needs no state beyond the process key. Implementations must be safe for
// concurrent use.
type FieldCipher interface {
	// EncryptField encrypts a plaintext field value into a cipher token.
	// Each call draws a fresh random nonce, so encrypting the same value
	// twice yields different tokens.
	EncryptField(plaintext string) (string, error)

	// DecryptField reverses EncryptField. Malformed tokens and key
	// mismatches fail with apperrors.ErrDecryption.
	DecryptField(token string) (string, error)
}
