// Package padding extends messages to a multiple of the block size and
// strips that extension again. PKCS#7 is the scheme used by the modes unless
// another Scheme is configured.
package padding

import (
	"fmt"
	"io"
	"strings"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
)

var (
	ErrInvalidPadding = common.NewError("invalid padding")
	ErrUnknownScheme  = common.NewError("unknown padding scheme")
)

// Scheme pads to and unpads from a multiple of block.Size.
type Scheme interface {
	Name() string
	Pad(data []byte) ([]byte, error)
	Unpad(padded []byte) ([]byte, error)
}

// Pad applies PKCS#7. A full block of value block.Size is appended when data
// is already aligned. data is not modified.
func Pad(data []byte) []byte {
	n := padLen(data)
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// Unpad removes PKCS#7 padding. Every one of the last n bytes must equal n.
func Unpad(padded []byte) ([]byte, error) {
	n, err := tailLen(padded)
	if err != nil {
		return nil, err
	}
	for _, v := range padded[len(padded)-n:] {
		if v != byte(n) {
			return nil, common.NewError(fmt.Sprintf("pkcs7 tail byte %d does not match length %d", v, n)).Base(ErrInvalidPadding)
		}
	}
	return padded[:len(padded)-n], nil
}

func padLen(data []byte) int {
	return block.Size - len(data)%block.Size
}

// tailLen validates the overall length and the final length byte shared by
// all schemes here, and returns that length.
func tailLen(padded []byte) (int, error) {
	if len(padded) == 0 || len(padded)%block.Size != 0 {
		return 0, common.NewError(fmt.Sprintf("padded length %d is not a positive multiple of %d", len(padded), block.Size)).Base(ErrInvalidPadding)
	}
	n := int(padded[len(padded)-1])
	if n < 1 || n > block.Size {
		return 0, common.NewError(fmt.Sprintf("padding length byte %d out of range [1, %d]", n, block.Size)).Base(ErrInvalidPadding)
	}
	return n, nil
}

type PKCS7 struct{}

func (PKCS7) Name() string {
	return "pkcs7"
}

func (PKCS7) Pad(data []byte) ([]byte, error) {
	return Pad(data), nil
}

func (PKCS7) Unpad(padded []byte) ([]byte, error) {
	return Unpad(padded)
}

// ANSIX923 fills with zero bytes and ends with the padding length.
type ANSIX923 struct{}

func (ANSIX923) Name() string {
	return "ansix923"
}

func (ANSIX923) Pad(data []byte) ([]byte, error) {
	n := padLen(data)
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	padded[len(padded)-1] = byte(n)
	return padded, nil
}

func (ANSIX923) Unpad(padded []byte) ([]byte, error) {
	n, err := tailLen(padded)
	if err != nil {
		return nil, err
	}
	for _, v := range padded[len(padded)-n : len(padded)-1] {
		if v != 0 {
			return nil, common.NewError("ansi x.923 filler is not zero").Base(ErrInvalidPadding)
		}
	}
	return padded[:len(padded)-n], nil
}

// ISO10126 fills with random bytes and ends with the padding length.
// Only the length byte can be checked on removal.
type ISO10126 struct {
	// Rand supplies the filler; nil means crypto/rand.
	Rand io.Reader
}

func (*ISO10126) Name() string {
	return "iso10126"
}

func (s *ISO10126) Pad(data []byte) ([]byte, error) {
	n := padLen(data)
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	if err := common.ReadRandom(s.Rand, padded[len(data):len(padded)-1]); err != nil {
		return nil, common.NewError("iso 10126 filler").Base(err)
	}
	padded[len(padded)-1] = byte(n)
	return padded, nil
}

func (*ISO10126) Unpad(padded []byte) ([]byte, error) {
	n, err := tailLen(padded)
	if err != nil {
		return nil, err
	}
	return padded[:len(padded)-n], nil
}

// Get returns a scheme by name. Case, '-', '_', '.' and spaces are ignored,
// so "ANSI_X923" and "ansi-x9.23" both resolve. An empty name means PKCS#7.
func Get(name string) (Scheme, error) {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.', ' ', '#':
			return -1
		}
		return r
	}, strings.ToLower(name))
	switch normalized {
	case "", "pkcs7":
		return PKCS7{}, nil
	case "ansix923":
		return ANSIX923{}, nil
	case "iso10126":
		return &ISO10126{}, nil
	default:
		return nil, common.NewError("padding " + name + " is not supported").Base(ErrUnknownScheme)
	}
}
