package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cipherplay/cipherrps/internal/model"
	"github.com/cipherplay/cipherrps/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

func (s *HubSuite) receive(sub *Subscriber) model.Event {
	select {
	case data, ok := <-sub.C:
		s.Require().True(ok, "subscriber channel closed")
		var event model.Event
		s.Require().NoError(json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		s.Require().Fail("timed out waiting for event")
		return model.Event{}
	}
}

func (s *HubSuite) TestPublishReachesSubscriber() {
	sub := s.hub.Subscribe()

	s.hub.Publish(model.Event{
		Type:      model.EventGameCreated,
		Timestamp: time.Now().UTC(),
		GameID:    3,
	})

	event := s.receive(sub)
	s.Equal(model.EventGameCreated, event.Type)
	s.Equal(model.GameID(3), event.GameID)
}

func (s *HubSuite) TestPublishReachesAllSubscribers() {
	first := s.hub.Subscribe()
	second := s.hub.Subscribe()

	s.hub.Publish(model.Event{Type: model.EventMoveSubmitted, GameID: 1})

	s.Equal(model.EventMoveSubmitted, s.receive(first).Type)
	s.Equal(model.EventMoveSubmitted, s.receive(second).Type)
}

func (s *HubSuite) TestUnsubscribeClosesChannel() {
	sub := s.hub.Subscribe()
	s.hub.Unsubscribe(sub)

	select {
	case _, ok := <-sub.C:
		s.False(ok)
	case <-time.After(time.Second):
		s.Fail("channel not closed after unsubscribe")
	}
}

func (s *HubSuite) TestUnsubscribedReceivesNothing() {
	sub := s.hub.Subscribe()
	s.hub.Unsubscribe(sub)

	// Drain the close
	for range sub.C {
	}

	s.hub.Publish(model.Event{Type: model.EventResultComputed, GameID: 2})

	// Channel stays closed and empty
	_, ok := <-sub.C
	s.False(ok)
}

func TestRecorder(t *testing.T) {
	recorder := NewRecorder()

	recorder.Publish(model.Event{Type: model.EventGameCreated, GameID: 0})
	recorder.Publish(model.Event{Type: model.EventMoveSubmitted, GameID: 0})

	events := recorder.Events()
	if len(events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(events))
	}
	if events[0].Type != model.EventGameCreated || events[1].Type != model.EventMoveSubmitted {
		t.Fatalf("events out of order: %v", events)
	}

	recorder.Reset()
	if len(recorder.Events()) != 0 {
		t.Fatal("reset did not clear events")
	}
}
