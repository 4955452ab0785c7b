package service

import (
	"math/rand"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// generateID produces the integer identifiers used for users and items:
// current epoch milliseconds plus a small random term. Collisions are
// practically impossible within the stores' uniqueness window.
func generateID() int64 {
	return time.Now().UnixMilli() + rand.Int63n(100)
}

// issueToken produces a fresh opaque bearer token: a salted digest of a
// time-derived id. The token carries no structure and is never verified
// offline, only resolved through the user store.
func issueToken() (string, error) {
	id := strconv.FormatInt(generateID(), 10)

	digest, err := bcrypt.GenerateFromPassword([]byte(id), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}
