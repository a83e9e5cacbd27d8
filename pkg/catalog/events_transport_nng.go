package catalog

import (
	"encoding/json"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/graphcore/corestore/pkg/logging"
)

// Topic prefixes carried on forwarded catalog events, so subscribers can
// filter one event kind.
const (
	TopicGraphStoreAdded   = "catalog.added|"
	TopicGraphStoreRemoved = "catalog.removed|"
)

// NNGEventForwarder re-publishes catalog events on a mangos PUB socket
// for out-of-process subscribers (dashboards, cache invalidators). It is
// registered like any other Listener; the catalog itself stays unaware a
// transport exists. Publish failures are logged and swallowed — a dead
// subscriber must never fail a catalog operation.
type NNGEventForwarder struct {
	sock mangos.Socket
	log  logging.Log
}

// NewNNGEventForwarder opens a PUB socket listening on addr
// (e.g. "tcp://127.0.0.1:9401" or "inproc://catalog-events").
func NewNNGEventForwarder(addr string, log logging.Log) (*NNGEventForwarder, error) {
	if log == nil {
		log = logging.NewNopLog()
	}
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, err
	}
	return &NNGEventForwarder{sock: sock, log: log}, nil
}

func (f *NNGEventForwarder) OnGraphStoreAdded(event GraphStoreAddedEvent) {
	f.publish(TopicGraphStoreAdded, event)
}

func (f *NNGEventForwarder) OnGraphStoreRemoved(event GraphStoreRemovedEvent) {
	f.publish(TopicGraphStoreRemoved, event)
}

func (f *NNGEventForwarder) publish(topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		f.log.Warn("catalog event marshal failed", logging.Err(err))
		return
	}
	msg := append([]byte(topic), payload...)
	if err := f.sock.Send(msg); err != nil {
		f.log.Warn("catalog event publish failed",
			logging.String("topic", topic),
			logging.Err(err),
		)
	}
}

// Close shuts the PUB socket down.
func (f *NNGEventForwarder) Close() error {
	return f.sock.Close()
}
