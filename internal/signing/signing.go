// Package signing computes and checks the upload signatures shared by the
// signer service and the storage emulator.
package signing

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Params are the signed upload parameters. Empty values are left out.
type Params map[string]string

// UploadParams returns the parameters a direct upload signs.
func UploadParams(folder string, timestamp int64) Params {
	return Params{"folder": folder, "timestamp": strconv.FormatInt(timestamp, 10)}
}

// Canonical joins the non-empty parameters as key=value pairs sorted by key.
func (p Params) Canonical() string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+p[k])
	}
	return strings.Join(pairs, "&")
}

// Sign returns the hex SHA-1 of the canonical string followed by the secret.
func Sign(p Params, secret string) string {
	sum := sha1.Sum([]byte(p.Canonical() + secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether signature matches p under secret.
func Verify(p Params, secret, signature string) bool {
	want := Sign(p, secret)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(signature))) == 1
}
