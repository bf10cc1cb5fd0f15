package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	_ "github.com/ayanami-desu/blockmode/component"
	"github.com/ayanami-desu/blockmode/option"
)

func main() {
	flag.Parse()
	for {
		h, err := option.PopOptionHandler()
		if err != nil {
			flag.Usage()
			log.Fatal("invalid options")
		}
		err = h.Handle()
		if err == nil {
			break
		}
	}
}
