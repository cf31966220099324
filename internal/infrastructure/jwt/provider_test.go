package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bidhub-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return k
}

func TestSignVerify_RoundTrip(t *testing.T) {
	k := testKey(t)
	p := NewProviderWithKey(k, &k.PublicKey, time.Hour)

	tok, err := p.Sign("acc-1", "admin", "sess-1")
	require.NoError(t, err)

	c, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", c.AccountID)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, "sess-1", c.SessionID)
	assert.Equal(t, "acc-1", c.Subject)
	assert.Equal(t, Issuer, c.Issuer)
}

func TestVerify_Expired(t *testing.T) {
	k := testKey(t)
	p := NewProviderWithKey(k, &k.PublicKey, -time.Minute)

	tok, err := p.Sign("acc-1", "user", "sess-1")
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongKey(t *testing.T) {
	k1, k2 := testKey(t), testKey(t)
	signer := NewProviderWithKey(k1, &k1.PublicKey, time.Hour)
	verifier := NewProviderWithKey(k2, &k2.PublicKey, time.Hour)

	tok, err := signer.Sign("acc-1", "user", "sess-1")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.Error(t, err)
}

func TestVerify_RejectsHMAC(t *testing.T) {
	k := testKey(t)
	p := NewProviderWithKey(k, &k.PublicKey, time.Hour)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AccountID: "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_RejectsForeignIssuer(t *testing.T) {
	k := testKey(t)
	p := NewProviderWithKey(k, &k.PublicKey, time.Hour)

	claims := Claims{SessionID: "sess-1", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(k)
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestVerify_RequiresSession(t *testing.T) {
	k := testKey(t)
	p := NewProviderWithKey(k, &k.PublicKey, time.Hour)

	tok, err := p.Sign("acc-1", "user", "")
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, ErrMissingSession)
}

func TestNewProvider_FromPEMFiles(t *testing.T) {
	k := testKey(t)
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(k)})
	pubDER, err := x509.MarshalPKIXPublicKey(&k.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := NewProvider(&config.Config{JWTPrivateKeyPath: privPath, JWTPublicKeyPath: pubPath, JWTExpiry: 2 * time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, p.Expiry())

	tok, err := p.Sign("acc-1", "user", "sess-1")
	require.NoError(t, err)
	_, err = p.Verify(tok)
	assert.NoError(t, err)
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTPrivateKeyPath: filepath.Join(t.TempDir(), "nope.pem")})
	assert.Error(t, err)
}
