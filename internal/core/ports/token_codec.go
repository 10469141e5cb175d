package ports

// TokenCodec mints and verifies the signed bearer tokens used for stateless
// authentication. Both operations are pure computation: no I/O, no state
// beyond the signing secret and lifetime fixed at construction.
type TokenCodec interface {
	// Issue returns a signed token for the given subject, stamped with the
	// issue time and the configured expiry.
	Issue(subject string) (string, error)

	// Verify checks the signature and expiry and returns the embedded
	// subject. Failures are domain.ErrTokenMalformed,
	// domain.ErrTokenSignatureInvalid or domain.ErrTokenExpired.
	Verify(token string) (string, error)
}
