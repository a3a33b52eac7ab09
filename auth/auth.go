// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// IdentitySeparator joins origin and agent. It does not occur in IP
// addresses and is not used by common user agents.
const IdentitySeparator = "|"

// IdentityResolver derives the voter identity for a request.
type IdentityResolver interface {
	Resolve(r *http.Request) string
}

// ResolveIdentity combines a network origin and a client agent string.
// Identical inputs always give the same identity, so everyone sharing an
// address and browser build counts as one voter.
func ResolveIdentity(origin, agent string) string {
	return origin + IdentitySeparator + agent
}

// UpgradeLegacyIdentity converts an identity written by older releases as
// "ip:agent" into the ResolveIdentity form. Only IPv4 origins are converted
// because an IPv6 origin cannot be split from the agent unambiguously.
func UpgradeLegacyIdentity(legacy string) (string, bool) {
	if strings.Contains(legacy, IdentitySeparator) {
		return "", false
	}
	origin, agent, found := strings.Cut(legacy, ":")
	if !found {
		return "", false
	}
	if ip := net.ParseIP(origin); ip == nil || ip.To4() == nil {
		return "", false
	}
	return ResolveIdentity(origin, agent), true
}

// RemoteAgentResolver identifies voters by client IP and User-Agent.
type RemoteAgentResolver struct {
	// TrustProxy honours X-Forwarded-For and X-Real-IP. Only enable it
	// behind a proxy that overwrites those headers.
	TrustProxy bool
	// Salt, when set, replaces the raw identity with an HMAC of it so
	// addresses are not written to disk.
	Salt string
}

func (res RemoteAgentResolver) Resolve(r *http.Request) string {
	identity := ResolveIdentity(ClientIP(r, res.TrustProxy), r.UserAgent())
	if res.Salt != "" {
		return HashIdentity(identity, res.Salt)
	}
	return identity
}

// ClientIP extracts the client IP address
// With trustProxy it checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Take first IP in chain
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// Strip port if present
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HashIdentity creates a one-way hash of a voter identity
// Includes salt to prevent rainbow table attacks
func HashIdentity(identity, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(identity))
	return hex.EncodeToString(h.Sum(nil))
}

// Credentials are the single shared admin login.
type Credentials struct {
	Username string
	Password string
}

// CheckAdmin compares the supplied login against creds in constant time.
// Empty configured credentials never match.
func CheckAdmin(username, password string, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return ErrInvalidCredentials
	}

	userOK := hmac.Equal(digest(username), digest(creds.Username))
	passOK := hmac.Equal(digest(password), digest(creds.Password))
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// digest hashes so comparisons do not leak length
func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}
