package service

import (
	"encoding/json"
	"sync"

	"github.com/pollify/backend/internal/client"
	"github.com/pollify/backend/internal/dto"
	"github.com/sirupsen/logrus"
)

// PollSubscriber is one live connection on the realtime channel. A single
// subscriber may sit in several poll groups; all of its updates arrive on the
// one Updates channel.
type PollSubscriber struct {
	ID      string
	Updates chan dto.PollResults
}

// PollBroker keeps one subscriber group per poll and pushes aggregate
// snapshots to every connection in a poll's group when a vote is admitted.
// Delivery is best-effort: slow subscribers drop updates rather than blocking
// the vote path.
type PollBroker interface {
	Connect(connID string) *PollSubscriber
	Disconnect(connID string)
	Subscribe(connID string, pollID uint)
	Unsubscribe(connID string, pollID uint)
	Publish(update dto.PollResults)
	Close() error
}

type pollBroker struct {
	rabbitClient    client.RabbitClient
	subscribers     map[string]*PollSubscriber
	groups          map[uint]map[string]*PollSubscriber
	subscriberMutex sync.RWMutex
}

// NewPollBroker builds the broker. With a RabbitMQ client present, published
// updates travel through the fanout exchange so every process dispatches them
// to its own local groups; without one, dispatch is direct and process-local.
func NewPollBroker(rabbitClient client.RabbitClient) PollBroker {
	broker := &pollBroker{
		rabbitClient: rabbitClient,
		subscribers:  make(map[string]*PollSubscriber),
		groups:       make(map[uint]map[string]*PollSubscriber),
	}

	if rabbitClient != nil {
		msgs, err := rabbitClient.ConsumeMessages()
		if err != nil {
			logrus.Errorf("Failed to consume vote updates, falling back to in-process dispatch: %v", err)
			broker.rabbitClient = nil
		} else {
			go broker.consumeLoop(msgs)
		}
	}

	return broker
}

func (b *pollBroker) consumeLoop(msgs <-chan []byte) {
	for msg := range msgs {
		var update dto.PollResults
		if err := json.Unmarshal(msg, &update); err != nil {
			logrus.Errorf("Error unmarshaling vote update: %v", err)
			continue
		}
		b.dispatch(update)
	}
}

func (b *pollBroker) Connect(connID string) *PollSubscriber {
	b.subscriberMutex.Lock()
	defer b.subscriberMutex.Unlock()

	if subscriber, exists := b.subscribers[connID]; exists {
		return subscriber
	}

	subscriber := &PollSubscriber{
		ID:      connID,
		Updates: make(chan dto.PollResults, 16),
	}
	b.subscribers[connID] = subscriber
	return subscriber
}

func (b *pollBroker) Disconnect(connID string) {
	b.subscriberMutex.Lock()
	defer b.subscriberMutex.Unlock()

	subscriber, exists := b.subscribers[connID]
	if !exists {
		return
	}

	for pollID, group := range b.groups {
		delete(group, connID)
		if len(group) == 0 {
			delete(b.groups, pollID)
		}
	}

	delete(b.subscribers, connID)
	close(subscriber.Updates)
}

func (b *pollBroker) Subscribe(connID string, pollID uint) {
	b.subscriberMutex.Lock()
	defer b.subscriberMutex.Unlock()

	subscriber, exists := b.subscribers[connID]
	if !exists {
		return
	}

	group, exists := b.groups[pollID]
	if !exists {
		group = make(map[string]*PollSubscriber)
		b.groups[pollID] = group
	}
	group[connID] = subscriber
}

func (b *pollBroker) Unsubscribe(connID string, pollID uint) {
	b.subscriberMutex.Lock()
	defer b.subscriberMutex.Unlock()

	group, exists := b.groups[pollID]
	if !exists {
		return
	}

	delete(group, connID)
	if len(group) == 0 {
		delete(b.groups, pollID)
	}
}

func (b *pollBroker) Publish(update dto.PollResults) {
	if b.rabbitClient == nil {
		b.dispatch(update)
		return
	}

	updateJson, err := json.Marshal(update)
	if err != nil {
		logrus.Errorf("Error marshaling vote update: %v", err)
		return
	}

	if err := b.rabbitClient.PublishMessage(updateJson); err != nil {
		logrus.Errorf("Error publishing vote update: %v", err)
		// Keep the local viewers live even when the fan-out fabric is down.
		b.dispatch(update)
	}
}

func (b *pollBroker) dispatch(update dto.PollResults) {
	b.subscriberMutex.RLock()
	defer b.subscriberMutex.RUnlock()

	for _, subscriber := range b.groups[update.PollID] {
		select {
		case subscriber.Updates <- update:
		default:
		}
	}
}

func (b *pollBroker) Close() error {
	b.subscriberMutex.Lock()
	defer b.subscriberMutex.Unlock()

	for connID, subscriber := range b.subscribers {
		delete(b.subscribers, connID)
		close(subscriber.Updates)
	}
	b.groups = make(map[uint]map[string]*PollSubscriber)

	if b.rabbitClient != nil {
		return b.rabbitClient.Close()
	}
	return nil
}
