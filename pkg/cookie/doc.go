// Package cookie writes and reads HTTP cookies with shared attributes and
// optional HMAC signing.
//
// All cookies from one Manager carry the same Path, Secure and SameSite
// attributes and are always HttpOnly.
//
// # Signed Cookies
//
// A signed cookie is tamper-evident, not secret: the value travels in
// base64 next to an HMAC-SHA256 of the cookie name and value.
//
//	m := cookie.New(
//		cookie.WithSecret(secret), // 32+ bytes
//		cookie.WithPath("/auth"),
//	)
//
//	if err := m.SetSigned(w, "state", value, 600); err != nil {
//		// no secret configured
//	}
//
//	value, err := m.GetSigned(r, "state")
//	if errors.Is(err, cookie.ErrBadSig) {
//		// altered or foreign cookie
//	}
//
// Signed operations return ErrNoSecret when the Manager has no secret.
package cookie
