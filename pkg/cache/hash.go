package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the hex SHA-256 of the JSON encoding of v. Catalogs and
// fields hash the same as long as their exported content is equal. Values
// that fail to encode hash what was written before the failure.
func HashJSON(v any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(v)
	return hex.EncodeToString(h.Sum(nil))
}

// stageKey builds "<stage>:<hash>" from the content a stage depends on.
func stageKey(stage, input string, opts any) string {
	return stage + ":" + HashJSON([]any{input, opts})
}
