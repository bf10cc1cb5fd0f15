package common

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	log "github.com/sirupsen/logrus"
)

// ReadRandom fills p from r. A nil r means crypto/rand.Reader.
// A short read is an error; the caller must not fall back to anything predictable.
func ReadRandom(r io.Reader, p []byte) error {
	if r == nil {
		r = rand.Reader
	}
	n, err := io.ReadFull(r, p)
	if err != nil {
		log.Debugf("random source returned %d of %d bytes: %v", n, len(p), err)
		return NewError("failed to read random bytes").Base(err)
	}
	return nil
}

// RandomBytes returns n bytes read from r.
func RandomBytes(r io.Reader, n int) ([]byte, error) {
	p := make([]byte, n)
	if err := ReadRandom(r, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RandomHex returns n random bytes from crypto/rand, hex encoded.
func RandomHex(n int) (string, error) {
	p, err := RandomBytes(nil, n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(p), nil
}
