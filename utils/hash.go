package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ContentHash digests a scoped view of an object for change detection.
// Fields are serialized in sorted key order so that equal content always
// produces equal hashes regardless of insertion order.
func ContentHash(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		raw, err := json.Marshal(fields[k])
		if err != nil {
			// Marshaling plain data records never fails in practice; fall
			// back to fmt so the hash stays deterministic anyway.
			raw = []byte(fmt.Sprintf("%v", fields[k]))
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.Write(raw)
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
