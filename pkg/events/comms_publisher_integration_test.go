package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	commsserver "github.com/nats-io/nats-server/v2/server"
	comms "github.com/nats-io/nats.go"
)

// startTestServer starts an in-process NATS server on a random port.
func startTestServer(t *testing.T) (*comms.Conn, func()) {
	t.Helper()

	opts := &commsserver.Options{
		Host:   "127.0.0.1",
		Port:   commsserver.RANDOM_PORT,
		NoLog:  true,
		NoSigs: true,
	}

	ns, err := commsserver.NewServer(opts)
	if err != nil {
		t.Fatalf("events:comms_publisher_integration_test - failed to create server: %v", err)
	}

	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		t.Fatal("events:comms_publisher_integration_test - server failed to start")
	}

	nc, err := comms.Connect(ns.ClientURL(), comms.Timeout(5*time.Second))
	if err != nil {
		ns.Shutdown()
		t.Fatalf("events:comms_publisher_integration_test - failed to connect: %v", err)
	}

	cleanup := func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	}

	return nc, cleanup
}

func receiveOne(t *testing.T, nc *comms.Conn, subject string) <-chan *CallCompletedEvent {
	t.Helper()
	received := make(chan *CallCompletedEvent, 1)
	sub, err := nc.Subscribe(subject, func(msg *comms.Msg) {
		var event CallCompletedEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			t.Errorf("events:comms_publisher_integration_test - failed to unmarshal: %v", err)
			return
		}
		received <- &event
	})
	if err != nil {
		t.Fatalf("events:comms_publisher_integration_test - failed to subscribe: %v", err)
	}
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	if err := nc.Flush(); err != nil {
		t.Fatalf("events:comms_publisher_integration_test - flush failed: %v", err)
	}
	return received
}

func TestCommsPublisher_PublishesGranularAndBase(t *testing.T) {
	nc, cleanup := startTestServer(t)
	defer cleanup()

	publisher := NewCommsPublisher(nc, nil)

	granular := receiveOne(t, nc, "stats.calls.completed.summoner.getSummonersByIds")
	base := receiveOne(t, nc, "stats.calls.completed")

	event := &CallCompletedEvent{
		RequestID: "req-7",
		Method:    "getSummonersByIds",
		Group:     "summoner",
		Region:    "na",
		Ok:        true,
		Timestamp: "2025-01-01T00:00:00Z",
	}
	if err := publisher.PublishCompleted(context.Background(), event); err != nil {
		t.Fatalf("events:comms_publisher_integration_test - publish failed: %v", err)
	}

	for name, ch := range map[string]<-chan *CallCompletedEvent{"granular": granular, "base": base} {
		select {
		case got := <-ch:
			if got.RequestID != "req-7" || got.Method != "getSummonersByIds" || !got.Ok {
				t.Errorf("events:comms_publisher_integration_test - %s subject got %+v", name, got)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("events:comms_publisher_integration_test - timed out waiting on %s subject", name)
		}
	}
}

func TestCommsPublisher_CustomSubject(t *testing.T) {
	nc, cleanup := startTestServer(t)
	defer cleanup()

	publisher := NewCommsPublisher(nc, &CommsPublisherOpts{Subject: "custom.done"})
	base := receiveOne(t, nc, "custom.done")

	if err := publisher.PublishCompleted(context.Background(), &CallCompletedEvent{Method: "getShards", Group: "lolStatus"}); err != nil {
		t.Fatalf("events:comms_publisher_integration_test - publish failed: %v", err)
	}

	select {
	case got := <-base:
		if got.Group != "lolStatus" {
			t.Errorf("events:comms_publisher_integration_test - Group = %q", got.Group)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events:comms_publisher_integration_test - timed out")
	}
}
