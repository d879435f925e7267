package service

import (
	"testing"

	"github.com/pollify/backend/internal/dto"
)

func snapshot(pollID uint, total int64) dto.PollResults {
	return dto.PollResults{
		PollID:     pollID,
		Results:    map[uint]dto.OptionResult{1: {Text: "a", Votes: total}},
		TotalVotes: total,
	}
}

func TestPublishReachesEveryGroupMember(t *testing.T) {
	broker := NewPollBroker(nil)
	defer broker.Close()

	first := broker.Connect("first")
	second := broker.Connect("second")
	other := broker.Connect("other")
	broker.Subscribe("first", 1)
	broker.Subscribe("second", 1)
	broker.Subscribe("other", 2)

	broker.Publish(snapshot(1, 5))

	for name, subscriber := range map[string]*PollSubscriber{"first": first, "second": second} {
		select {
		case update := <-subscriber.Updates:
			if update.PollID != 1 || update.TotalVotes != 5 {
				t.Errorf("%s received unexpected update %+v", name, update)
			}
		default:
			t.Errorf("%s did not receive the update", name)
		}
	}

	select {
	case update := <-other.Updates:
		t.Fatalf("subscriber of poll 2 received %+v", update)
	default:
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	broker := NewPollBroker(nil)
	defer broker.Close()

	subscriber := broker.Connect("conn")
	broker.Subscribe("conn", 1)
	broker.Unsubscribe("conn", 1)

	broker.Publish(snapshot(1, 1))

	select {
	case update := <-subscriber.Updates:
		t.Fatalf("unsubscribed connection received %+v", update)
	default:
	}
}

func TestDisconnectClosesUpdatesChannel(t *testing.T) {
	broker := NewPollBroker(nil)
	defer broker.Close()

	subscriber := broker.Connect("conn")
	broker.Subscribe("conn", 1)
	broker.Disconnect("conn")

	if _, ok := <-subscriber.Updates; ok {
		t.Error("expected Updates channel to be closed after disconnect")
	}

	// Publishing after disconnect must not panic or deliver.
	broker.Publish(snapshot(1, 1))
}

func TestConnectIsIdempotentPerConnection(t *testing.T) {
	broker := NewPollBroker(nil)
	defer broker.Close()

	first := broker.Connect("conn")
	second := broker.Connect("conn")
	if first != second {
		t.Error("expected the same subscriber for repeated Connect calls")
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	broker := NewPollBroker(nil)
	defer broker.Close()

	broker.Connect("slow")
	broker.Subscribe("slow", 1)

	// More publishes than the subscriber buffer holds; must not block.
	for i := 0; i < 100; i++ {
		broker.Publish(snapshot(1, int64(i)))
	}
}
