// Package block defines the fixed-size block and key types, the single-block
// primitive contract consumed by the modes, and grouping of byte sequences
// into blocks.
package block

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/ayanami-desu/blockmode/common"
)

// Size is the block size B in bytes. Keys have the same length.
const Size = 16

type Block [Size]byte

type Key [Size]byte

var (
	ErrInvalidBlockLength = common.NewError("invalid block length")
	ErrInvalidKeyLength   = common.NewError("invalid key length")
	ErrUnknownPrimitive   = common.NewError("unknown block primitive")
)

// Primitive encrypts and decrypts exactly one block under a key.
// Both directions are total for well-formed inputs and never modify the key.
type Primitive interface {
	Name() string
	EncryptBlock(src Block, key *Key) Block
	DecryptBlock(src Block, key *Key) Block
}

// Group splits data into consecutive blocks. len(data) must be a multiple of Size.
func Group(data []byte) ([]Block, error) {
	if len(data)%Size != 0 {
		return nil, common.NewError(fmt.Sprintf("cannot group %d bytes into %d-byte blocks", len(data), Size)).Base(ErrInvalidBlockLength)
	}
	blocks := make([]Block, len(data)/Size)
	for i := range blocks {
		copy(blocks[i][:], data[i*Size:])
	}
	return blocks, nil
}

// Ungroup concatenates blocks in order.
func Ungroup(blocks []Block) []byte {
	data := make([]byte, 0, len(blocks)*Size)
	for i := range blocks {
		data = append(data, blocks[i][:]...)
	}
	return data
}

func Xor(a, b Block) Block {
	var out Block
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// KeyFromBytes copies p into a Key. p must be exactly Size bytes.
func KeyFromBytes(p []byte) (*Key, error) {
	if len(p) != Size {
		return nil, common.NewError(fmt.Sprintf("key length is %d, want %d", len(p), Size)).Base(ErrInvalidKeyLength)
	}
	k := new(Key)
	copy(k[:], p)
	return k, nil
}

// KeyFromHex decodes a hex encoded key, ignoring surrounding whitespace.
func KeyFromHex(s string) (*Key, error) {
	p, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, common.NewError("key is not valid hex").Base(err)
	}
	return KeyFromBytes(p)
}

var (
	primitivesMu sync.RWMutex
	primitives   = make(map[string]Primitive)
)

// RegisterPrimitive makes p available to Get under p.Name().
func RegisterPrimitive(p Primitive) {
	primitivesMu.Lock()
	defer primitivesMu.Unlock()
	primitives[strings.ToLower(p.Name())] = p
}

// Get returns the registered primitive with the given name, case-insensitive.
func Get(name string) (Primitive, error) {
	primitivesMu.RLock()
	defer primitivesMu.RUnlock()
	p, found := primitives[strings.ToLower(name)]
	if !found {
		return nil, common.NewError("primitive " + name + " is not registered").Base(ErrUnknownPrimitive)
	}
	return p, nil
}
