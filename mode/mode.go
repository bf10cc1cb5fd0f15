// Package mode implements the ECB, CBC and CTR modes of operation on top of a
// block.Primitive.
//
// Wire formats:
//
//	ECB: C[0] || C[1] || ...            (padded, multiple of block.Size)
//	CBC: IV || C[0] || C[1] || ...      (padded, IV is one block)
//	CTR: nonce || C[0] || C[1] || ...   (not padded, nonce is NonceSize bytes)
//
// ECB leaks equality of plaintext blocks and is provided to demonstrate that.
package mode

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
	"github.com/ayanami-desu/blockmode/padding"
)

var (
	ErrInvalidCiphertextLength = common.NewError("invalid ciphertext length")
	ErrUnknownMode             = common.NewError("unknown mode")
)

// Mode transforms a whole message. Encrypt output can be passed to Decrypt of
// the same mode, primitive, padding and key.
type Mode interface {
	Name() string
	Encrypt(plaintext []byte, key *block.Key) ([]byte, error)
	Decrypt(ciphertext []byte, key *block.Key) ([]byte, error)
}

type options struct {
	rand        io.Reader
	padding     padding.Scheme
	parallelism int
}

type Option func(*options)

// WithRand sets the source of IVs and nonces. The default is crypto/rand.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithPadding replaces PKCS#7 for ECB and CBC. CTR ignores it.
func WithPadding(s padding.Scheme) Option {
	return func(o *options) {
		if s != nil {
			o.padding = s
		}
	}
}

// WithParallelism spreads independent block work over n goroutines.
// CBC encryption stays sequential.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}

func newOptions(opts []Option) options {
	o := options{
		padding:     padding.PKCS7{},
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkKey(key *block.Key) error {
	if key == nil {
		return common.NewError("key is nil").Base(block.ErrInvalidKeyLength)
	}
	return nil
}

// Creator builds a mode around a primitive.
type Creator func(p block.Primitive, opts ...Option) Mode

var (
	creatorsMu sync.RWMutex
	creators   = make(map[string]Creator)
)

func RegisterMode(name string, c Creator) {
	creatorsMu.Lock()
	defer creatorsMu.Unlock()
	creators[strings.ToLower(name)] = c
}

// New builds the mode registered under name, case-insensitive.
func New(name string, p block.Primitive, opts ...Option) (Mode, error) {
	creatorsMu.RLock()
	c, found := creators[strings.ToLower(name)]
	creatorsMu.RUnlock()
	if !found {
		return nil, common.NewError("mode " + name + " is not registered").Base(ErrUnknownMode)
	}
	return c(p, opts...), nil
}

// Names lists the registered modes in order.
func Names() []string {
	creatorsMu.RLock()
	defer creatorsMu.RUnlock()
	names := make([]string, 0, len(creators))
	for name := range creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
