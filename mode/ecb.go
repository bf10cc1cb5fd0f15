package mode

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
)

// ECB encrypts every block on its own. Equal plaintext blocks produce equal
// ciphertext blocks under one key.
type ECB struct {
	primitive block.Primitive
	opts      options
}

func NewECB(p block.Primitive, opts ...Option) *ECB {
	e := &ECB{
		primitive: p,
		opts:      newOptions(opts),
	}
	log.Debugf("ecb mode created with %s primitive, %s padding", p.Name(), e.opts.padding.Name())
	return e
}

func (*ECB) Name() string {
	return "ecb"
}

func (e *ECB) Encrypt(plaintext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	padded, err := e.opts.padding.Pad(plaintext)
	if err != nil {
		return nil, common.NewError("ecb failed to pad plaintext").Base(err)
	}
	blocks, err := block.Group(padded)
	if err != nil {
		return nil, err
	}
	forEach(len(blocks), e.opts.parallelism, func(i int) {
		blocks[i] = e.primitive.EncryptBlock(blocks[i], key)
	})
	log.Debugf("ecb encrypted %d blocks", len(blocks))
	return block.Ungroup(blocks), nil
}

func (e *ECB) Decrypt(ciphertext []byte, key *block.Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 {
		return nil, common.NewError("ecb ciphertext is empty").Base(ErrInvalidCiphertextLength)
	}
	blocks, err := block.Group(ciphertext)
	if err != nil {
		return nil, common.NewError(fmt.Sprintf("ecb ciphertext of %d bytes", len(ciphertext))).Base(ErrInvalidCiphertextLength)
	}
	forEach(len(blocks), e.opts.parallelism, func(i int) {
		blocks[i] = e.primitive.DecryptBlock(blocks[i], key)
	})
	plaintext, err := e.opts.padding.Unpad(block.Ungroup(blocks))
	if err != nil {
		return nil, common.NewError("ecb failed to unpad plaintext").Base(err)
	}
	log.Debugf("ecb decrypted %d blocks", len(blocks))
	return plaintext, nil
}

func init() {
	RegisterMode("ecb", func(p block.Primitive, opts ...Option) Mode {
		return NewECB(p, opts...)
	})
}
