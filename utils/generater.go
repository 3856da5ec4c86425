package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// NewToken returns a random token for email verification and password resets.
func NewToken() string {
	return uuid.NewString()
}

const txnAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewTransactionID builds a gateway-style reference such as TXN-1700000000000-k3j9x0a2m.
func NewTransactionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(txnAlphabet))))
		if err != nil {
			suffix[i] = '0'
			continue
		}
		suffix[i] = txnAlphabet[n.Int64()]
	}
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), suffix)
}
