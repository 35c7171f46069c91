package utils

import (
	"math/rand"
)

// Premium and request rows keep the 15-character lowercase ids the old
// PocketBase collections used, so existing frontend links stay valid.
const recordIDLength = 15
const recordIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func GenerateRecordID() string {
	b := make([]byte, recordIDLength)
	for i := range b {
		b[i] = recordIDCharset[rand.Intn(len(recordIDCharset))]
	}
	return string(b)
}
