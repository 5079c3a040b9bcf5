package diag

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAnon        = "anon"
	RoleServiceRole = "service_role"
)

type keyClaims struct {
	jwt.RegisteredClaims
	Ref  string `json:"ref"`
	Role string `json:"role"`
}

// KeyInfo is what an operator needs to know about a Supabase API key:
// which project it belongs to, what role it carries, and whether it is
// safe to ship to browsers.
type KeyInfo struct {
	ProjectRef string
	Role       string
	Issuer     string
	ExpiresAt  time.Time
}

// Privileged reports whether the key grants administrative access and
// must stay server-side.
func (k *KeyInfo) Privileged() bool {
	return k.Role == RoleServiceRole
}

// DescribeKey decodes a Supabase JWT's claims without verifying the
// signature. This is an inspection tool, not an authentication step;
// the operator already holds the key.
func DescribeKey(token string) (*KeyInfo, error) {
	claims := &keyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	ref := claims.Ref
	if ref == "" {
		// Newer keys carry the project ref only in the issuer host,
		// e.g. https://abcd1234.supabase.co/auth/v1.
		host := strings.TrimPrefix(claims.Issuer, "https://")
		if i := strings.Index(host, "."); i > 0 {
			ref = host[:i]
		}
	}
	if claims.Role == "" {
		return nil, fmt.Errorf("token has no role claim")
	}

	info := &KeyInfo{
		ProjectRef: ref,
		Role:       claims.Role,
		Issuer:     claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
