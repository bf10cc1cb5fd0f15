package mode

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
)

// NonceSize is the length of the CTR nonce. The remaining bytes of each
// counter block hold the little-endian block index.
const NonceSize = block.Size / 2

// CTR turns the primitive into a keystream: K[i] = E(nonce || LE64(i)).
// The message is not padded and the last chunk may be short. A (key, nonce)
// pair must never encrypt two messages.
type CTR struct {
	primitive block.Primitive
	opts      options
}

func NewCTR(p block.Primitive, opts ...Option) *CTR {
	c := &CTR{
		primitive: p,
		opts:      newOptions(opts),
	}
	log.Debugf("ctr mode created with %s primitive", p.Name())
	return c
}

func (*CTR) Name() string {
	return "ctr"
}

// CounterBlock builds V[i] = nonce || LE64(i).
func CounterBlock(nonce []byte, i uint64) (block.Block, error) {
	var v block.Block
	if len(nonce) != NonceSize {
		return v, common.NewError(fmt.Sprintf("nonce length is %d, want %d", len(nonce), NonceSize)).Base(ErrInvalidCiphertextLength)
	}
	copy(v[:NonceSize], nonce)
	binary.LittleEndian.PutUint64(v[NonceSize:], i)
	return v, nil
}

// Keystream returns K[i] for the given nonce.
func (c *CTR) Keystream(nonce []byte, i uint64, key *block.Key) (block.Block, error) {
	if err := checkKey(key); err != nil {
		return block.Block{}, err
	}
	v, err := CounterBlock(nonce, i)
	if err != nil {
		return block.Block{}, err
	}
	return c.primitive.EncryptBlock(v, key), nil
}

// Encrypt returns nonce || C with len(C) == len(plaintext).
func (c *CTR) Encrypt(plaintext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	out := make([]byte, NonceSize+len(plaintext))
	nonce := out[:NonceSize]
	if err := common.ReadRandom(c.opts.rand, nonce); err != nil {
		return nil, common.NewError("ctr failed to generate nonce").Base(err)
	}
	n := c.xorKeyStream(out[NonceSize:], plaintext, nonce, key)
	log.Debugf("ctr encrypted %d blocks", n)
	return out, nil
}

// Decrypt takes the nonce from the head of ciphertext and regenerates the
// same keystream.
func (c *CTR) Decrypt(ciphertext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	nonce, body, err := SplitNonce(ciphertext)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(body))
	n := c.xorKeyStream(out, body, nonce, key)
	log.Debugf("ctr decrypted %d blocks", n)
	return out, nil
}

// DecryptBlockAt recovers P[i] from C[i] alone. chunk is at most one block;
// only the last chunk of a message may be shorter.
func (c *CTR) DecryptBlockAt(nonce []byte, i uint64, chunk []byte, key *block.Key) ([]byte, error) {
	if len(chunk) > block.Size {
		return nil, common.NewError(fmt.Sprintf("chunk of %d bytes is larger than a block", len(chunk))).Base(ErrInvalidCiphertextLength)
	}
	k, err := c.Keystream(nonce, i, key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(chunk))
	for j := range chunk {
		out[j] = chunk[j] ^ k[j]
	}
	return out, nil
}

// SplitNonce separates a CTR message into its nonce and ciphertext body.
func SplitNonce(ciphertext []byte) (nonce, body []byte, err error) {
	if len(ciphertext) < NonceSize {
		return nil, nil, common.NewError(fmt.Sprintf("ctr ciphertext of %d bytes is shorter than the nonce", len(ciphertext))).Base(ErrInvalidCiphertextLength)
	}
	return ciphertext[:NonceSize], ciphertext[NonceSize:], nil
}

// xorKeyStream writes src ^ keystream into dst and returns the number of
// keystream blocks used.
func (c *CTR) xorKeyStream(dst, src, nonce []byte, key *block.Key) int {
	n := (len(src) + block.Size - 1) / block.Size
	forEach(n, c.opts.parallelism, func(i int) {
		var v block.Block
		copy(v[:NonceSize], nonce)
		binary.LittleEndian.PutUint64(v[NonceSize:], uint64(i))
		k := c.primitive.EncryptBlock(v, key)

		lo := i * block.Size
		hi := lo + block.Size
		if hi > len(src) {
			hi = len(src)
		}
		for j := lo; j < hi; j++ {
			dst[j] = src[j] ^ k[j-lo]
		}
	})
	return n
}

func init() {
	RegisterMode("ctr", func(p block.Primitive, opts ...Option) Mode {
		return NewCTR(p, opts...)
	})
}
