package base

import (
	"encoding/base64"
)

// AuthType is the credential scheme a gateway expects on every request
type AuthType string

const (
	AuthTypeNone      AuthType = ""
	AuthTypeBasicAuth AuthType = "basic_auth"
	AuthTypeBearer    AuthType = "bearer"
	// AuthTypeRawToken sends the token as the whole Authorization header value
	AuthTypeRawToken AuthType = "raw_token"
	// AuthTypeHeader sends the token in a custom header
	AuthTypeHeader AuthType = "header"
)

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Type     AuthType
	Username string
	Password string
	Token    string
	Header   string
}

// apply sets the authentication header on headers
func (a AuthConfig) apply(headers map[string]string) {
	switch a.Type {
	case AuthTypeBasicAuth:
		creds := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
		headers["Authorization"] = "Basic " + creds
	case AuthTypeBearer:
		headers["Authorization"] = "Bearer " + a.Token
	case AuthTypeRawToken:
		headers["Authorization"] = a.Token
	case AuthTypeHeader:
		headers[a.Header] = a.Token
	}
}

// headerName is the header that carries the credential, empty when none is sent
func (a AuthConfig) headerName() string {
	switch a.Type {
	case AuthTypeBasicAuth, AuthTypeBearer, AuthTypeRawToken:
		return "Authorization"
	case AuthTypeHeader:
		return a.Header
	}
	return ""
}
