// Package avatar derives a default avatar reference for new accounts.
// Derivation is a pure function of the email: registration never performs a
// network call, and the same email always yields the same URL.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator produces an avatar reference for an email address.
type Generator interface {
	URL(email string) string
}

// Gravatar derives the gravatar.com URL for an email. The gravatar protocol
// hashes the lowercased, trimmed address with md5.
type Gravatar struct {
	Size    int
	Rating  string
	Default string
}

// NewGravatar returns a Gravatar with the service defaults: 200px, "pg"
// rating, "mm" (mystery man) fallback image.
func NewGravatar() *Gravatar {
	return &Gravatar{Size: 200, Rating: "pg", Default: "mm"}
}

func (g *Gravatar) URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&r=%s&d=%s",
		hex.EncodeToString(sum[:]), g.Size, g.Rating, g.Default)
}

// Noop generates no avatar. It is the safe fallback when no provider is
// configured.
type Noop struct{}

func (Noop) URL(string) string { return "" }

// FromProvider maps a configured provider name to a Generator. Unknown names
// fall back to Noop so account creation never depends on a third party.
func FromProvider(name string) Generator {
	switch name {
	case "gravatar":
		return NewGravatar()
	default:
		return Noop{}
	}
}
