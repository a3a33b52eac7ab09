// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity resolution and the admin login check.

# Voter Identity

Voters are anonymous. A request's identity is its network origin and
User-Agent joined by IdentitySeparator:

	id := auth.ResolveIdentity("203.0.113.7", "Mozilla/5.0 ...")
	// "203.0.113.7|Mozilla/5.0 ..."

The resolver used by the HTTP layer implements IdentityResolver:

	resolver := auth.RemoteAgentResolver{TrustProxy: false, Salt: ""}
	id := resolver.Resolve(r)

This is a heuristic: people behind one NAT address with the same browser
build share an identity and can only vote once between them. Swap in another
IdentityResolver (session cookie, account ID) to change that; the ledger
only compares identities for equality.

# Client IP Extraction

	ip := auth.ClientIP(r, trustProxy)

With trustProxy, X-Forwarded-For (first entry) and X-Real-IP are honoured.
Otherwise only RemoteAddr is used, since those headers are client-controlled.

# Identity Hashing

With a salt configured, identities are replaced by HMAC-SHA256:

	hash := auth.HashIdentity(identity, salt)

so raw addresses and user agents never reach the data files.

# Admin Credentials

Admin operations use one shared username and password:

	err := auth.CheckAdmin(user, pass, auth.Credentials{Username: u, Password: p})

Both values are hashed and compared with hmac.Equal. Empty configured
credentials reject every login.
*/
package auth
