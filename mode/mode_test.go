package mode

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/padding"
)

var testKey = block.Key{0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6, 0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c}

// fixedRand yields the same bytes on every call to Read of a fresh reader.
func fixedRand(seed byte) *bytes.Reader {
	p := make([]byte, 64)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return bytes.NewReader(p)
}

func message(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + 3)
	}
	return p
}

func primitives() []block.Primitive {
	return []block.Primitive{block.NewAES(), block.NewTwofish()}
}

func TestRoundTrip(t *testing.T) {
	lengths := []int{0, 1, 13, 15, 16, 17, 31, 32, 33, 100, 1000, 4099}
	for _, p := range primitives() {
		for _, name := range []string{"ecb", "cbc", "ctr"} {
			for _, par := range []int{1, 4} {
				m, err := New(name, p, WithParallelism(par))
				require.NoError(t, err)
				for _, n := range lengths {
					t.Run(fmt.Sprintf("%s/%s/par%d/%d", p.Name(), name, par, n), func(t *testing.T) {
						pt := message(n)
						ct, err := m.Encrypt(pt, &testKey)
						require.NoError(t, err)
						got, err := m.Decrypt(ct, &testKey)
						require.NoError(t, err)
						assert.Equal(t, len(pt), len(got))
						assert.True(t, bytes.Equal(pt, got))
					})
				}
			}
		}
	}
}

func TestCiphertextLengths(t *testing.T) {
	p := block.NewAES()
	for _, n := range []int{0, 13, 16, 40} {
		padded := (n/block.Size + 1) * block.Size

		ct, err := NewECB(p).Encrypt(message(n), &testKey)
		require.NoError(t, err)
		assert.Len(t, ct, padded)

		ct, err = NewCBC(p).Encrypt(message(n), &testKey)
		require.NoError(t, err)
		assert.Len(t, ct, padded+block.Size)

		ct, err = NewCTR(p).Encrypt(message(n), &testKey)
		require.NoError(t, err)
		assert.Len(t, ct, NonceSize+n)
	}
}

func TestECBRepeatsEqualBlocks(t *testing.T) {
	pt := bytes.Repeat([]byte("YELLOW SUBMARINE"), 3)
	ct, err := NewECB(block.NewAES()).Encrypt(pt, &testKey)
	require.NoError(t, err)
	require.Len(t, ct, 4*block.Size)
	assert.Equal(t, ct[0:16], ct[16:32])
	assert.Equal(t, ct[16:32], ct[32:48])
	assert.NotEqual(t, ct[32:48], ct[48:64])

	// the same message encrypts to the same bytes every time
	again, err := NewECB(block.NewAES()).Encrypt(pt, &testKey)
	require.NoError(t, err)
	assert.Equal(t, ct, again)
}

func TestECBRejects(t *testing.T) {
	e := NewECB(block.NewAES())
	for _, n := range []int{0, 1, 15, 17} {
		_, err := e.Decrypt(make([]byte, n), &testKey)
		assert.True(t, errors.Is(err, ErrInvalidCiphertextLength), "length %d", n)
	}

	// a block that decrypts to all zeros has a zero length byte
	zero := block.NewAES().EncryptBlock(block.Block{}, &testKey)
	_, err := e.Decrypt(zero[:], &testKey)
	assert.True(t, errors.Is(err, padding.ErrInvalidPadding))
}

func TestCBCMatchesStandardLibrary(t *testing.T) {
	pt := message(70)
	c := NewCBC(block.NewAES(), WithRand(fixedRand(9)))
	ct, err := c.Encrypt(pt, &testKey)
	require.NoError(t, err)

	iv := make([]byte, block.Size)
	_, err = fixedRand(9).Read(iv)
	require.NoError(t, err)
	assert.Equal(t, iv, ct[:block.Size])

	b, err := aes.NewCipher(testKey[:])
	require.NoError(t, err)
	padded := padding.Pad(pt)
	want := make([]byte, len(padded))
	cipher.NewCBCEncrypter(b, iv).CryptBlocks(want, padded)
	assert.Equal(t, want, ct[block.Size:])
}

func TestCBCDiffusion(t *testing.T) {
	pt := message(5 * block.Size)
	for i := 0; i < 5; i++ {
		flipped := append([]byte(nil), pt...)
		flipped[i*block.Size+3] ^= 0x10

		a, err := NewCBC(block.NewAES(), WithRand(fixedRand(1))).Encrypt(pt, &testKey)
		require.NoError(t, err)
		b, err := NewCBC(block.NewAES(), WithRand(fixedRand(1))).Encrypt(flipped, &testKey)
		require.NoError(t, err)

		// skip the IV; compare ciphertext block j
		for j := 0; j < 6; j++ {
			lo := block.Size + j*block.Size
			if j < i {
				assert.Equal(t, a[lo:lo+block.Size], b[lo:lo+block.Size], "flip %d block %d", i, j)
			} else {
				assert.NotEqual(t, a[lo:lo+block.Size], b[lo:lo+block.Size], "flip %d block %d", i, j)
			}
		}
	}
}

func TestCBCFreshIV(t *testing.T) {
	c := NewCBC(block.NewAES())
	pt := message(48)
	a, err := c.Encrypt(pt, &testKey)
	require.NoError(t, err)
	b, err := c.Encrypt(pt, &testKey)
	require.NoError(t, err)
	assert.NotEqual(t, a[:block.Size], b[:block.Size])
	assert.NotEqual(t, a, b)
}

func TestCBCRejects(t *testing.T) {
	c := NewCBC(block.NewAES())
	for _, n := range []int{0, 8, 16, 17, 40} {
		_, err := c.Decrypt(make([]byte, n), &testKey)
		assert.True(t, errors.Is(err, ErrInvalidCiphertextLength), "length %d", n)
	}
}

func TestCTRKeystreamLayout(t *testing.T) {
	pt := message(3*block.Size + 5)
	ct, err := NewCTR(block.NewAES(), WithRand(fixedRand(40))).Encrypt(pt, &testKey)
	require.NoError(t, err)
	require.Len(t, ct, NonceSize+len(pt))

	nonce := ct[:NonceSize]
	assert.Equal(t, []byte{40, 41, 42, 43, 44, 45, 46, 47}, nonce)

	b, err := aes.NewCipher(testKey[:])
	require.NoError(t, err)
	for i := 0; i*block.Size < len(pt); i++ {
		v := make([]byte, block.Size)
		copy(v, nonce)
		binary.LittleEndian.PutUint64(v[NonceSize:], uint64(i))
		k := make([]byte, block.Size)
		b.Encrypt(k, v)

		lo := i * block.Size
		hi := lo + block.Size
		if hi > len(pt) {
			hi = len(pt)
		}
		for j := lo; j < hi; j++ {
			require.Equal(t, pt[j]^k[j-lo], ct[NonceSize+j], "byte %d", j)
		}
	}
}

func TestCTRCounterBlock(t *testing.T) {
	v, err := CounterBlock([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 0x0102)
	require.NoError(t, err)
	assert.Equal(t, block.Block{1, 2, 3, 4, 5, 6, 7, 8, 0x02, 0x01, 0, 0, 0, 0, 0, 0}, v)

	_, err = CounterBlock(make([]byte, block.Size), 0)
	assert.Error(t, err)
}

func TestCTRRandomAccess(t *testing.T) {
	c := NewCTR(block.NewAES())
	pt := message(7*block.Size + 9)
	ct, err := c.Encrypt(pt, &testKey)
	require.NoError(t, err)

	nonce, body, err := SplitNonce(ct)
	require.NoError(t, err)

	// walk the blocks backwards so no block depends on a previous call
	for i := (len(body) - 1) / block.Size; i >= 0; i-- {
		lo := i * block.Size
		hi := lo + block.Size
		if hi > len(body) {
			hi = len(body)
		}
		got, err := NewCTR(block.NewAES()).DecryptBlockAt(nonce, uint64(i), body[lo:hi], &testKey)
		require.NoError(t, err)
		assert.Equal(t, pt[lo:hi], got, "block %d", i)
	}

	_, err = c.DecryptBlockAt(nonce, 0, make([]byte, block.Size+1), &testKey)
	assert.True(t, errors.Is(err, ErrInvalidCiphertextLength))
}

func TestCTRNonceTravelsWithCiphertext(t *testing.T) {
	enc := NewCTR(block.NewAES(), WithRand(fixedRand(1)))
	dec := NewCTR(block.NewAES(), WithRand(fixedRand(200)))
	pt := []byte("attack at dawn, not at dusk")
	ct, err := enc.Encrypt(pt, &testKey)
	require.NoError(t, err)
	got, err := dec.Decrypt(ct, &testKey)
	require.NoError(t, err)
	assert.Equal(t, pt, got)
}

func TestCTRRejects(t *testing.T) {
	c := NewCTR(block.NewAES())
	for _, n := range []int{0, 1, NonceSize - 1} {
		_, err := c.Decrypt(make([]byte, n), &testKey)
		assert.True(t, errors.Is(err, ErrInvalidCiphertextLength), "length %d", n)
	}

	got, err := c.Decrypt(make([]byte, NonceSize), &testKey)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParallelMatchesSequential(t *testing.T) {
	pt := message(64*block.Size + 5)
	for _, name := range []string{"ecb", "cbc", "ctr"} {
		seq, err := New(name, block.NewAES(), WithRand(fixedRand(3)))
		require.NoError(t, err)
		par, err := New(name, block.NewAES(), WithRand(fixedRand(3)), WithParallelism(8))
		require.NoError(t, err)

		a, err := seq.Encrypt(pt, &testKey)
		require.NoError(t, err)
		b, err := par.Encrypt(pt, &testKey)
		require.NoError(t, err)
		assert.Equal(t, a, b, name)

		got, err := par.Decrypt(a, &testKey)
		require.NoError(t, err)
		assert.Equal(t, pt, got, name)
	}
}

func TestRandomSourceFailure(t *testing.T) {
	for _, name := range []string{"cbc", "ctr"} {
		m, err := New(name, block.NewAES(), WithRand(bytes.NewReader([]byte{1, 2, 3})))
		require.NoError(t, err)
		_, err = m.Encrypt([]byte("hello"), &testKey)
		assert.Error(t, err, name)
	}
}

func TestNilKey(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name, block.NewAES())
		require.NoError(t, err)
		_, err = m.Encrypt([]byte("x"), nil)
		assert.True(t, errors.Is(err, block.ErrInvalidKeyLength), name)
		_, err = m.Decrypt(make([]byte, 32), nil)
		assert.True(t, errors.Is(err, block.ErrInvalidKeyLength), name)
	}
}

func TestPaddingOption(t *testing.T) {
	c := NewCBC(block.NewAES(), WithPadding(padding.ANSIX923{}))
	pt := []byte("Hello, world!")
	ct, err := c.Encrypt(pt, &testKey)
	require.NoError(t, err)
	got, err := c.Decrypt(ct, &testKey)
	require.NoError(t, err)
	assert.Equal(t, pt, got)

	// the decrypted tail is 00 00 03, which PKCS#7 refuses
	_, err = NewCBC(block.NewAES()).Decrypt(ct, &testKey)
	assert.True(t, errors.Is(err, padding.ErrInvalidPadding))
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"cbc", "ctr", "ecb"}, Names())
	for _, name := range []string{"ECB", "cbc", "Ctr"} {
		m, err := New(name, block.NewAES())
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(name), m.Name())
	}
	_, err := New("ofb", block.NewAES())
	assert.True(t, errors.Is(err, ErrUnknownMode))
}
