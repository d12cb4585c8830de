package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func FormatGameLockKey(gameID uint) string {
	return fmt.Sprintf("game:%d:lock", gameID)
}

// LockToken generates a random holder token for a lock key.
func LockToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
