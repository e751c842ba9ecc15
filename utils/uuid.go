package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// DeterministicID derives a stable identifier from a namespace and key, so
// retried operations on the same key produce the same reference
func DeterministicID(namespace, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+":"+key)).String()
}
