package identity

import (
	"github.com/google/uuid"
)

// AnonymousName is the display-name fallback when the identity provider
// supplies neither a first name nor an email.
const AnonymousName = "anonymous"

// Identity is what the external identity provider supplies per authenticated
// request: a stable user id plus optional email and first-name claims.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
}

// DisplayName resolves the author string recorded on newly created content:
// first name, falling back to email, falling back to "anonymous".
func (i Identity) DisplayName() string {
	if i.FirstName != "" {
		return i.FirstName
	}
	if i.Email != "" {
		return i.Email
	}
	return AnonymousName
}

// Aliases returns every identity string that counts as proof of authorship
// for this user. Author usernames were recorded inconsistently over the
// system's history (user id, email, first name, or the display-name
// composite), so ownership checks must match against the whole set rather
// than a single canonical field.
func (i Identity) Aliases() []string {
	seen := make(map[string]struct{}, 4)
	var aliases []string
	for _, a := range []string{i.UserID.String(), i.Email, i.FirstName, i.DisplayName()} {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		aliases = append(aliases, a)
	}
	return aliases
}

// Owns reports whether authorUsername matches any alias of this identity.
func (i Identity) Owns(authorUsername string) bool {
	if authorUsername == "" {
		return false
	}
	for _, a := range i.Aliases() {
		if a == authorUsername {
			return true
		}
	}
	return false
}
