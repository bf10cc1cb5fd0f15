// Package crypt wires a configured mode, primitive and key into a command
// line encrypt/decrypt of whole files.
package crypt

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
	"github.com/ayanami-desu/blockmode/config"
	"github.com/ayanami-desu/blockmode/mode"
	"github.com/ayanami-desu/blockmode/padding"
)

const Name = "CRYPT"

const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// Crypter applies one mode under one key.
type Crypter struct {
	mode mode.Mode
	key  *block.Key
}

// keyPrompt asks for the key when the config has none.
var keyPrompt = promptKey

func NewCrypter(ctx context.Context) (*Crypter, error) {
	cfg, ok := config.FromContext(ctx, Name).(*Config)
	if !ok {
		return nil, common.NewError("crypt config not found in context")
	}
	primitive, err := block.Get(cfg.Crypt.Cipher)
	if err != nil {
		return nil, err
	}
	scheme, err := padding.Get(cfg.Crypt.Padding)
	if err != nil {
		return nil, err
	}
	m, err := mode.New(cfg.Crypt.Mode, primitive,
		mode.WithPadding(scheme),
		mode.WithParallelism(cfg.Crypt.Parallelism),
	)
	if err != nil {
		return nil, err
	}

	hexKey := cfg.Crypt.Key
	if hexKey == "" {
		hexKey, err = keyPrompt()
		if err != nil {
			return nil, common.NewError("no key configured").Base(err)
		}
	}
	key, err := block.KeyFromHex(hexKey)
	if err != nil {
		return nil, err
	}
	log.Debugf("crypter ready: %s mode, %s cipher, %s padding", m.Name(), primitive.Name(), scheme.Name())
	return &Crypter{
		mode: m,
		key:  key,
	}, nil
}

// Run reads all of in, applies op and writes the result to out.
func (c *Crypter) Run(op string, in io.Reader, out io.Writer) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return common.NewError("failed to read input").Base(err)
	}
	var dst []byte
	switch op {
	case OpEncrypt:
		dst, err = c.mode.Encrypt(src, c.key)
	case OpDecrypt:
		dst, err = c.mode.Decrypt(src, c.key)
	default:
		return common.NewError("unknown operation " + op)
	}
	if err != nil {
		return common.NewError(op + " failed").Base(err)
	}
	if _, err := out.Write(dst); err != nil {
		return common.NewError("failed to write output").Base(err)
	}
	log.Infof("%s (%s): %d bytes in, %d bytes out", op, c.mode.Name(), len(src), len(dst))
	return nil
}

func promptKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", common.NewError("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "key (hex): ")
	p, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", common.NewError("failed to read key").Base(err)
	}
	return string(p), nil
}

// logLevel maps 0 (debug) .. 5 (off) onto logrus levels.
func logLevel(n int) log.Level {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return log.Level(int(log.DebugLevel) - n)
}
