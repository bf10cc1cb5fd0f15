package block

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// AES is AES-128 from crypto/aes.
type AES struct {
	schedules *scheduleCache
}

func NewAES() *AES {
	return &AES{
		schedules: newScheduleCache("aes", func(key []byte) (cipher.Block, error) {
			if err := validateKeySize(key); err != nil {
				return nil, err
			}
			b, err := aes.NewCipher(key)
			if err != nil {
				return nil, fmt.Errorf("aes.NewCipher() failed: %w", err)
			}
			return b, nil
		}),
	}
}

func (*AES) Name() string {
	return "aes"
}

func (a *AES) EncryptBlock(src Block, key *Key) Block {
	var dst Block
	a.schedules.get(key).Encrypt(dst[:], src[:])
	return dst
}

func (a *AES) DecryptBlock(src Block, key *Key) Block {
	var dst Block
	a.schedules.get(key).Decrypt(dst[:], src[:])
	return dst
}

// Forget drops all cached key schedules.
func (a *AES) Forget() {
	a.schedules.flush()
}

// validateKeySize validates if key size is acceptable.
func validateKeySize(key []byte) error {
	if len(key) != Size {
		return fmt.Errorf("key length is %d, want %d: %w", len(key), Size, ErrInvalidKeyLength)
	}
	return nil
}

func init() {
	RegisterPrimitive(NewAES())
}
