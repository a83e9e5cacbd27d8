//go:build zmq
// +build zmq

package catalog

import (
	"encoding/json"

	zmq "github.com/pebbe/zmq4"

	"github.com/graphcore/corestore/pkg/logging"
)

// ZMQEventForwarder re-publishes catalog events on a ZeroMQ PUB socket,
// the cgo-backed alternative to NNGEventForwarder for deployments
// already standardized on ZeroMQ. Built only under the zmq tag.
type ZMQEventForwarder struct {
	sock *zmq.Socket
	log  logging.Log
}

// NewZMQEventForwarder opens a PUB socket bound to addr
// (e.g. "tcp://*:9402").
func NewZMQEventForwarder(addr string, log logging.Log) (*ZMQEventForwarder, error) {
	if log == nil {
		log = logging.NewNopLog()
	}
	sock, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := sock.Bind(addr); err != nil {
		sock.Close()
		return nil, err
	}
	return &ZMQEventForwarder{sock: sock, log: log}, nil
}

func (f *ZMQEventForwarder) OnGraphStoreAdded(event GraphStoreAddedEvent) {
	f.publish(TopicGraphStoreAdded, event)
}

func (f *ZMQEventForwarder) OnGraphStoreRemoved(event GraphStoreRemovedEvent) {
	f.publish(TopicGraphStoreRemoved, event)
}

func (f *ZMQEventForwarder) publish(topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		f.log.Warn("catalog event marshal failed", logging.Err(err))
		return
	}
	// Multipart: topic frame for subscriber-side filtering, then payload.
	if _, err := f.sock.SendMessage(topic, payload); err != nil {
		f.log.Warn("catalog event publish failed",
			logging.String("topic", topic),
			logging.Err(err),
		)
	}
}

// Close shuts the PUB socket down.
func (f *ZMQEventForwarder) Close() error {
	return f.sock.Close()
}
