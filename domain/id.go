package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	digits       = "0123456789"

	RoomIDLength  = 24
	UserIDLength  = 14
	JoinKeyLength = 9
)

// NewRoomID returns a candidate room id. Callers must check the store for
// collisions and retry; the id is random, not sequential, so a retry loop
// terminates quickly.
func NewRoomID() string {
	return randomString(alphanumeric, RoomIDLength)
}

// NewUserID returns a 14-digit account id.
func NewUserID() string {
	return randomString(digits, UserIDLength)
}

// NewJoinKey returns a short shared join secret for a room.
func NewJoinKey() string {
	return randomString(alphanumeric, JoinKeyLength)
}

func randomString(charset string, length int) string {
	max := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		// crypto/rand never fails on supported platforms; a failure here
		// means the process cannot continue safely anyway.
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out)
}
