// Package qrtoken generates the opaque tokens encoded into booking QR codes.
// Uniqueness is enforced by the storage layer; callers regenerate on conflict.
package qrtoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const prefix = "PKG"

func New() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("qrtoken: crypto/rand unavailable: %v", err))
	}
	return prefix + "-" + hex.EncodeToString(b)
}
