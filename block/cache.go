package block

import (
	"crypto/cipher"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	scheduleTTL     = 30 * time.Second
	scheduleCleanup = time.Minute
)

// scheduleCache keeps expanded keys so a message does not re-run the key
// schedule for every block. Entries expire scheduleTTL after they are added.
type scheduleCache struct {
	name    string
	ciphers *cache.Cache
	expand  func(key []byte) (cipher.Block, error)
}

func newScheduleCache(name string, expand func(key []byte) (cipher.Block, error)) *scheduleCache {
	return &scheduleCache{
		name:    name,
		ciphers: cache.New(scheduleTTL, scheduleCleanup),
		expand:  expand,
	}
}

// get returns the expanded cipher for key. expand only fails on a wrong key
// length, which the Key type rules out, so a failure panics.
func (c *scheduleCache) get(key *Key) cipher.Block {
	id := string(key[:])
	if v, found := c.ciphers.Get(id); found {
		return v.(cipher.Block)
	}
	b, err := c.expand(key[:])
	if err != nil {
		panic(c.name + ": key expansion failed: " + err.Error())
	}
	c.ciphers.SetDefault(id, b)
	return b
}

func (c *scheduleCache) flush() {
	c.ciphers.Flush()
}
