// Package build pulls in every package that registers option handlers or
// config creators.
package build

import (
	_ "github.com/ayanami-desu/blockmode/crypt"
	_ "github.com/ayanami-desu/blockmode/version"
)
