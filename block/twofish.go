package block

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/twofish"
)

// Twofish is Twofish with a 128-bit key from golang.org/x/crypto/twofish.
type Twofish struct {
	schedules *scheduleCache
}

func NewTwofish() *Twofish {
	return &Twofish{
		schedules: newScheduleCache("twofish", func(key []byte) (cipher.Block, error) {
			if err := validateKeySize(key); err != nil {
				return nil, err
			}
			b, err := twofish.NewCipher(key)
			if err != nil {
				return nil, fmt.Errorf("twofish.NewCipher() failed: %w", err)
			}
			return b, nil
		}),
	}
}

func (*Twofish) Name() string {
	return "twofish"
}

func (t *Twofish) EncryptBlock(src Block, key *Key) Block {
	var dst Block
	t.schedules.get(key).Encrypt(dst[:], src[:])
	return dst
}

func (t *Twofish) DecryptBlock(src Block, key *Key) Block {
	var dst Block
	t.schedules.get(key).Decrypt(dst[:], src[:])
	return dst
}

func (t *Twofish) Forget() {
	t.schedules.flush()
}

func init() {
	RegisterPrimitive(NewTwofish())
}
