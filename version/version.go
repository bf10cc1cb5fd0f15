package version

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/ayanami-desu/blockmode/block"
	"github.com/ayanami-desu/blockmode/common"
	"github.com/ayanami-desu/blockmode/constant"
	"github.com/ayanami-desu/blockmode/mode"
	"github.com/ayanami-desu/blockmode/option"
)

type versionOption struct {
	flag *bool
}

func (*versionOption) Name() string {
	return "version"
}

func (*versionOption) Priority() int {
	return 10
}

func (c *versionOption) Handle() error {
	if *c.flag {
		fmt.Println("blockmode", constant.Version)
		fmt.Println("Go Version:", runtime.Version())
		fmt.Println("OS/Arch:", runtime.GOOS+"/"+runtime.GOARCH)
		fmt.Println("Git Commit:", constant.Commit)
		fmt.Println("Modes:", mode.Names())
		return nil
	}
	return common.NewError("not set")
}

type keyOption struct {
	cipher *string
}

func (k *keyOption) Name() string {
	return "KEY"
}

func (k *keyOption) Handle() error {
	if *k.cipher == "" {
		return common.NewError("not set")
	}
	key, err := generateKey(*k.cipher)
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

func (k *keyOption) Priority() int {
	return 1
}

// generateKey returns a random hex key for the named primitive.
func generateKey(cipher string) (string, error) {
	p, err := block.Get(cipher)
	if err != nil {
		return "", err
	}
	key, err := common.RandomHex(block.Size)
	if err != nil {
		return "", common.NewError("failed to generate " + p.Name() + " key").Base(err)
	}
	return key, nil
}

func init() {
	option.RegisterHandler(&versionOption{
		flag: flag.Bool("version", false, "Display version and help info"),
	})
	option.RegisterHandler(&keyOption{
		cipher: flag.String("key", "", "generate a random hex key for the given cipher (aes, twofish)"),
	})
}
