package crypt

import (
	"runtime"

	"github.com/ayanami-desu/blockmode/config"
)

type CryptConfig struct {
	Mode        string `json:"mode" yaml:"mode"`
	Cipher      string `json:"cipher" yaml:"cipher"`
	Padding     string `json:"padding" yaml:"padding"`
	Key         string `json:"key" yaml:"key"`
	Parallelism int    `json:"parallelism" yaml:"parallelism"`
}

type Config struct {
	LogLevel int         `json:"log_level" yaml:"log-level"`
	Crypt    CryptConfig `json:"crypt" yaml:"crypt"`
}

func init() {
	config.RegisterConfigCreator(Name, func() interface{} {
		return &Config{
			LogLevel: 1,
			Crypt: CryptConfig{
				Mode:        "cbc",
				Cipher:      "aes",
				Padding:     "pkcs7",
				Parallelism: runtime.NumCPU(),
			},
		}
	})
}
