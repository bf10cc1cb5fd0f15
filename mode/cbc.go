package mode

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
)

// CBC chains each plaintext block with the previous ciphertext block before
// encrypting it. A fresh IV is drawn per message and sent as the first block.
type CBC struct {
	primitive block.Primitive
	opts      options
}

func NewCBC(p block.Primitive, opts ...Option) *CBC {
	c := &CBC{
		primitive: p,
		opts:      newOptions(opts),
	}
	log.Debugf("cbc mode created with %s primitive, %s padding", p.Name(), c.opts.padding.Name())
	return c
}

func (*CBC) Name() string {
	return "cbc"
}

// Encrypt returns IV || C[0] || ... || C[n-1]. Encryption of one message is
// sequential since C[i] depends on C[i-1].
func (c *CBC) Encrypt(plaintext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var iv block.Block
	if err := common.ReadRandom(c.opts.rand, iv[:]); err != nil {
		return nil, common.NewError("cbc failed to generate iv").Base(err)
	}
	padded, err := c.opts.padding.Pad(plaintext)
	if err != nil {
		return nil, common.NewError("cbc failed to pad plaintext").Base(err)
	}
	blocks, err := block.Group(padded)
	if err != nil {
		return nil, err
	}

	out := make([]block.Block, len(blocks)+1)
	out[0] = iv
	prev := iv
	for i := range blocks {
		prev = c.primitive.EncryptBlock(block.Xor(blocks[i], prev), key)
		out[i+1] = prev
	}
	log.Debugf("cbc encrypted %d blocks", len(blocks))
	return block.Ungroup(out), nil
}

// Decrypt reads the IV from the first block. All ciphertext blocks are known
// up front, so the blocks are decrypted independently.
func (c *CBC) Decrypt(ciphertext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if len(ciphertext) < 2*block.Size || len(ciphertext)%block.Size != 0 {
		return nil, common.NewError(fmt.Sprintf("cbc ciphertext of %d bytes, want iv and at least one block", len(ciphertext))).Base(ErrInvalidCiphertextLength)
	}
	blocks, err := block.Group(ciphertext)
	if err != nil {
		return nil, err
	}

	// blocks[0] is the IV, so blocks[i] precedes the i-th ciphertext block
	plain := make([]block.Block, len(blocks)-1)
	forEach(len(plain), c.opts.parallelism, func(i int) {
		plain[i] = block.Xor(c.primitive.DecryptBlock(blocks[i+1], key), blocks[i])
	})
	plaintext, err := c.opts.padding.Unpad(block.Ungroup(plain))
	if err != nil {
		return nil, common.NewError("cbc failed to unpad plaintext").Base(err)
	}
	log.Debugf("cbc decrypted %d blocks", len(plain))
	return plaintext, nil
}

func init() {
	RegisterMode("cbc", func(p block.Primitive, opts ...Option) Mode {
		return NewCBC(p, opts...)
	})
}
