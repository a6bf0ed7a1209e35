// Package id generates compact identifiers for invocations and host requests.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New returns a random UUIDv4 as 26 lowercase base32 characters, joined to
// prefix with an underscore when prefix is set ("req_...").
func New(prefix string) (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	body := strings.ToLower(encoding.EncodeToString(u[:]))
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		return body, nil
	}
	return prefix + "_" + body, nil
}
