// Package ident generates task identifiers and content hashes.
package ident

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// UUID returns a random (v4) UUID, optionally without hyphens.
func UUID(removeHyphen bool) string {
	u := uuid.NewString()
	if removeHyphen {
		u = strings.ReplaceAll(u, "-", "")
	}
	return u
}

// MD5 returns the lowercase hex MD5 digest of text's UTF-8 bytes. Used for
// cache keys, not for anything security related.
func MD5(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
