// Package auth persists an optional HTTP Cookie header in the system keyring.
//
// Some presentation hosts only serve manifests to a logged-in browser session;
// the stored cookie is attached to every request built by network.FromConfig.
package auth

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service = "vidqueue"
	user    = "http-cookie"
)

// SetCookie stores the Cookie header value.
func SetCookie(cookie string) error {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return errors.New("cookie is empty")
	}
	return keyring.Set(service, user, cookie)
}

// GetCookie returns the stored Cookie header value.
func GetCookie() (string, error) {
	return keyring.Get(service, user)
}

// DeleteCookie removes the stored cookie.
func DeleteCookie() error {
	return keyring.Delete(service, user)
}

// IsNotFound reports whether err means no cookie was stored.
func IsNotFound(err error) bool {
	return errors.Is(err, keyring.ErrNotFound)
}
