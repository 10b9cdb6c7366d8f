package auth

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// GeneratePasswordHash creates hash based on provided password
func GeneratePasswordHash(pass string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies that hash is equal to the one which will be produced by password
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var totpValidateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// TotpKey is shared secret of authenticator app
type TotpKey struct {
	Secret string
	URI    string
}

// GenerateTotpKey creates new secret for account, URI can be rendered as QR code
func GenerateTotpKey(issuer, account string) (TotpKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return TotpKey{}, err
	}
	return TotpKey{Secret: key.Secret(), URI: key.URL()}, nil
}

// VerifyTotp checks code against secret allowing one period of clock skew
func VerifyTotp(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at.UTC(), totpValidateOpts)
	return err == nil && ok
}
