package security

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"net/url"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/types"
)

// Form fields carrying a sealed payload
const (
	FieldData      = "data"
	FieldSignature = "signature"
)

// DigestSigner implements the shared-secret scheme
//
//	signature = base64(sha1(secret + data + secret)), data = base64(json(payload))
//
// The same secret signs outgoing requests and verifies incoming callbacks.
type DigestSigner struct {
	secret string
}

// NewDigestSigner returns a signer for secret. An empty secret is a configuration error.
func NewDigestSigner(secret string) (*DigestSigner, error) {
	if secret == "" {
		return nil, ierr.NewError("digest signer requires a secret").
			WithHint("Configure the gateway private key").
			Mark(ierr.ErrConfiguration)
	}
	return &DigestSigner{secret: secret}, nil
}

// Sign returns the signature of an already encoded data string
func (s *DigestSigner) Sign(data string) string {
	sum := sha1.Sum([]byte(s.secret + data + s.secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Encode renders payload as base64 of its compact JSON
func Encode(payload any) (string, error) {
	raw, err := types.WireJSON.Marshal(payload)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Payload could not be encoded as JSON").
			Mark(ierr.ErrValidation)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Seal encodes payload and signs it, returning the data and signature form values
func (s *DigestSigner) Seal(payload any) (data string, signature string, err error) {
	data, err = Encode(payload)
	if err != nil {
		return "", "", err
	}
	return data, s.Sign(data), nil
}

// Verify recomputes the signature of data and compares it in constant time
func (s *DigestSigner) Verify(data, signature string) bool {
	expected := s.Sign(data)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Open verifies signature and only then decodes data into out.
// A mismatch is reported as ErrSignatureMismatch and out is left untouched.
func (s *DigestSigner) Open(data, signature string, out any) error {
	if data == "" || signature == "" {
		return ierr.NewError("callback is missing data or signature").
			WithHint("Callback payload must carry both data and signature").
			Mark(ierr.ErrValidation)
	}

	if !s.Verify(data, signature) {
		return ierr.NewError("callback signature mismatch").
			WithHint("Signature verification failed").
			Mark(ierr.ErrSignatureMismatch)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Callback data is not valid base64").
			Mark(ierr.ErrValidation)
	}

	if err := types.WireJSON.Unmarshal(raw, out); err != nil {
		return ierr.WithError(err).
			WithHint("Callback data is not valid JSON").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OpenValues is Open for query-string or form encoded callbacks
func (s *DigestSigner) OpenValues(values url.Values, out any) error {
	return s.Open(values.Get(FieldData), values.Get(FieldSignature), out)
}

// OpenQuery parses a raw query string and opens it
func (s *DigestSigner) OpenQuery(rawQuery string, out any) error {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Callback payload is not a valid query string").
			Mark(ierr.ErrValidation)
	}
	return s.OpenValues(values, out)
}
