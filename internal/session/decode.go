package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

type payload struct {
	Sub       string `json:"sub"`
	Role      string `json:"role"`
	Firstname string `json:"firstname"`
	Exp       int64  `json:"exp"`
}

// Decode extracts the identity from a credential's payload segment without
// checking the signature. It fails closed: any structural problem (wrong
// segment count, bad base64, bad JSON, empty subject) yields nil. It never
// panics and never returns an error.
func Decode(token string) *Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Tolerate padded payloads from older token issuers.
		raw, err = base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			return nil
		}
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	if strings.TrimSpace(p.Sub) == "" {
		return nil
	}
	id := &Identity{
		Subject:   p.Sub,
		Role:      ParseRole(p.Role),
		Firstname: p.Firstname,
	}
	if p.Exp > 0 {
		id.ExpiresAt = time.Unix(p.Exp, 0).UTC()
	}
	return id
}

// Valid is the single session-validity predicate: structural decode plus
// expiry check. It returns the identity only when both pass; callers must
// never test presence alone.
func Valid(token string, now time.Time) *Identity {
	id := Decode(token)
	if id == nil || id.Expired(now) {
		return nil
	}
	return id
}
