package security

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// FieldSigner signs an ordered list of field values:
//
//	signature = hex(md5(f1 + f2 + ... + fN + key))
//
// The order is dictated by the gateway per endpoint and must be preserved.
type FieldSigner struct {
	key KeySource
}

func NewFieldSigner(key KeySource) *FieldSigner {
	return &FieldSigner{key: key}
}

// Sign fetches the key and signs fields in the given order
func (s *FieldSigner) Sign(ctx context.Context, fields ...string) (string, error) {
	key, err := s.key.Key(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, fields...)
	parts = append(parts, string(key))
	return MD5Hex(parts...), nil
}

// Verify reports whether signature matches fields, hex case is ignored
func (s *FieldSigner) Verify(ctx context.Context, signature string, fields ...string) (bool, error) {
	expected, err := s.Sign(ctx, fields...)
	if err != nil {
		return false, err
	}
	got := strings.ToLower(strings.TrimSpace(signature))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1, nil
}

// MD5Hex returns the lowercase hex md5 of the concatenated parts
func MD5Hex(parts ...string) string {
	h := md5.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
