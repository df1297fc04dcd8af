package publish

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/handpose"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient records publishes instead of talking to a broker.
type fakeClient struct {
	mqtt.Client

	published  []published
	publishErr error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.published = append(c.published, published{
		topic:    topic,
		qos:      qos,
		retained: retained,
		payload:  payload.([]byte),
	})
	return &fakeToken{err: c.publishErr}
}

func (c *fakeClient) Disconnect(quiesce uint) {}

func TestPublishStates(t *testing.T) {
	client := &fakeClient{}
	p := NewWithClient(client, "mudra")

	states := []handpose.HandState{
		{
			Handedness:   detector.Left,
			FingerCount:  2,
			PalmShowing:  true,
			MotionStatus: handpose.StatusMoving,
		},
	}
	if err := p.PublishStates(states); err != nil {
		t.Fatalf("failed to publish states: %v", err)
	}

	if len(client.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(client.published))
	}

	msg := client.published[0]
	if msg.topic != "mudra/hands" {
		t.Errorf("expected topic mudra/hands, got %s", msg.topic)
	}
	if !msg.retained {
		t.Error("expected hands message to be retained")
	}

	var payload struct {
		Hands []struct {
			Handedness  string `json:"handedness"`
			FingerCount int    `json:"fingerCount"`
		} `json:"hands"`
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(msg.payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if len(payload.Hands) != 1 || payload.Hands[0].Handedness != "Left" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if payload.Hands[0].FingerCount != 2 {
		t.Errorf("expected finger count 2, got %d", payload.Hands[0].FingerCount)
	}
}

func TestPublishEvent(t *testing.T) {
	client := &fakeClient{}
	p := NewWithClient(client, "mudra")

	event := handpose.FlipEvent{
		Hand:      detector.Right,
		Direction: handpose.PalmToBack,
		Velocity:  0.0375,
	}
	if err := p.PublishEvent(event); err != nil {
		t.Fatalf("failed to publish event: %v", err)
	}

	if len(client.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(client.published))
	}

	msg := client.published[0]
	if msg.topic != "mudra/events" {
		t.Errorf("expected topic mudra/events, got %s", msg.topic)
	}
	if msg.retained {
		t.Error("flip events should not be retained")
	}

	var payload struct {
		Event struct {
			Hand      string  `json:"hand"`
			Direction string  `json:"direction"`
			Velocity  float64 `json:"velocity"`
		} `json:"event"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(msg.payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Event.Hand != "Right" || payload.Event.Direction != "Palm to Back" {
		t.Errorf("unexpected event payload %+v", payload.Event)
	}
	want := "Right Hand flipped: Palm to Back (velocity: 0.0375)"
	if payload.Message != want {
		t.Errorf("expected message %q, got %q", want, payload.Message)
	}
}

func TestPublishError(t *testing.T) {
	client := &fakeClient{publishErr: errors.New("broker gone")}
	p := NewWithClient(client, "mudra")

	if err := p.PublishEvent(handpose.FlipEvent{Hand: detector.Left, Direction: handpose.BackToPalm}); err == nil {
		t.Error("expected publish error")
	}
}

func TestDefaultBaseTopic(t *testing.T) {
	p := NewWithClient(&fakeClient{}, "")
	if p.base != "mudra" {
		t.Errorf("expected default base topic mudra, got %s", p.base)
	}
}
