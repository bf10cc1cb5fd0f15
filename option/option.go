package option

import "github.com/ayanami-desu/blockmode/common"

// Handler runs one command line feature. Handle returns an error when its
// flags are not set so the next handler gets a turn.
type Handler interface {
	Name() string
	Handle() error
	Priority() int
}

var handlers = make(map[string]Handler)

func RegisterHandler(h Handler) {
	handlers[h.Name()] = h
}

// PopOptionHandler removes and returns the handler with the highest priority.
func PopOptionHandler() (Handler, error) {
	var maxHandler Handler
	for _, h := range handlers {
		if maxHandler == nil || maxHandler.Priority() < h.Priority() {
			maxHandler = h
		}
	}
	if maxHandler == nil {
		return nil, common.NewError("no option left")
	}
	delete(handlers, maxHandler.Name())
	return maxHandler, nil
}
