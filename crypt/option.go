package crypt

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ayanami-desu/blockmode/common"
	"github.com/ayanami-desu/blockmode/config"
	"github.com/ayanami-desu/blockmode/option"
)

type cryptOption struct {
	op   *string
	path *string
	in   *string
	out  *string
}

func (*cryptOption) Name() string {
	return Name
}

func (*cryptOption) Priority() int {
	return 5
}

func (c *cryptOption) Handle() error {
	if *c.op == "" {
		return common.NewError("not set")
	}
	if err := run(*c.path, *c.op, *c.in, *c.out); err != nil {
		log.Fatal(err)
	}
	return nil
}

// loadConfig picks the decoder from the file extension.
func loadConfig(ctx context.Context, path string) (context.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewError("failed to read config file " + path).Base(err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return config.WithJSONConfig(ctx, data)
	case ".yaml", ".yml":
		return config.WithYAMLConfig(ctx, data)
	default:
		return nil, common.NewError("unsupported config file " + path + ", want .json, .yaml or .yml")
	}
}

func run(path, op, inPath, outPath string) error {
	ctx, err := loadConfig(context.Background(), path)
	if err != nil {
		return err
	}
	cfg := config.FromContext(ctx, Name).(*Config)
	log.SetLevel(logLevel(cfg.LogLevel))

	crypter, err := NewCrypter(ctx)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return common.NewError("failed to open input").Base(err)
		}
		defer f.Close()
		in = f
	}

	if outPath == "" || outPath == "-" {
		return crypter.Run(op, in, os.Stdout)
	}
	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return common.NewError("failed to create output").Base(err)
	}
	if err := crypter.Run(op, in, f); err != nil {
		f.Close()
		os.Remove(outPath)
		log.Warnf("removed partial output %s", outPath)
		return err
	}
	return f.Close()
}

func init() {
	option.RegisterHandler(&cryptOption{
		op:   flag.String("crypt", "", "encrypt or decrypt the input"),
		path: flag.String("config", "config.yaml", "config file (.json, .yaml or .yml)"),
		in:   flag.String("in", "-", "input file, - for stdin"),
		out:  flag.String("out", "-", "output file, - for stdout"),
	})
}
