package referrals

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet skips 0/O and 1/I so codes survive being read out loud.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 8

// generateCode draws an 8-character referral code from a 32^8 space.
// Collisions are negligible at that size; inserts still retry on the
// unique index just in case.
func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("referral code entropy: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
