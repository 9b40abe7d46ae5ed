package utils

import (
	"crypto/rand"
	"io"
	"math/big"
)

// LinkCodeAlphabet is the 32-symbol set used for partner codes: digits 2-9 and
// uppercase letters, with 0/O, 1/I and L removed so codes survive being read
// aloud or retyped from a screenshot.
const LinkCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// LinkCodeLength is the fixed length of a partner code.
const LinkCodeLength = 6

var linkCodeReader io.Reader = rand.Reader

// GenerateLinkCode creates a random partner code from the restricted alphabet.
// Partner codes gate account linking, so an entropy source failure is fatal
// rather than degraded into a guessable code.
func GenerateLinkCode() string {
	n := big.NewInt(int64(len(LinkCodeAlphabet)))
	out := make([]byte, LinkCodeLength)
	for i := range out {
		v, err := rand.Int(linkCodeReader, n)
		if err != nil {
			panic("link code entropy source failed: " + err.Error())
		}
		out[i] = LinkCodeAlphabet[v.Int64()]
	}
	return string(out)
}
