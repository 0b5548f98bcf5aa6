package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var _ JetStream = (nats.JetStreamContext)(nil)

type fakeJS struct {
	info      *nats.StreamInfo
	infoErr   error
	added     *nats.StreamConfig
	updated   *nats.StreamConfig
	published []string
	failAfter int
}

func (f *fakeJS) StreamInfo(string, ...nats.JSOpt) (*nats.StreamInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeJS) AddStream(cfg *nats.StreamConfig, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	f.added = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

func (f *fakeJS) UpdateStream(cfg *nats.StreamConfig, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	f.updated = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

func (f *fakeJS) Publish(subj string, _ []byte, _ ...nats.PubOpt) (*nats.PubAck, error) {
	if f.failAfter > 0 && len(f.published) >= f.failAfter {
		return nil, errors.New("nats unavailable")
	}
	f.published = append(f.published, subj)
	return &nats.PubAck{Stream: StreamName}, nil
}

func TestEnsureStream_Creates(t *testing.T) {
	js := &fakeJS{infoErr: nats.ErrStreamNotFound}
	p := &Publisher{Log: zap.NewNop(), JS: js}

	if err := p.EnsureStream(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if js.added == nil || js.added.Name != StreamName || js.added.Subjects[0] != StreamSubject {
		t.Fatalf("expected stream to be created, got %+v", js.added)
	}
}

func TestEnsureStream_AlreadyCovered(t *testing.T) {
	js := &fakeJS{info: &nats.StreamInfo{Config: nats.StreamConfig{Name: StreamName, Subjects: []string{StreamSubject}}}}
	p := &Publisher{Log: zap.NewNop(), JS: js}

	if err := p.EnsureStream(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if js.added != nil || js.updated != nil {
		t.Fatal("expected no changes to a matching stream")
	}
}

func TestEnsureStream_AddsMissingSubject(t *testing.T) {
	js := &fakeJS{info: &nats.StreamInfo{Config: nats.StreamConfig{Name: StreamName, Subjects: []string{"legacy.>"}}}}
	p := &Publisher{Log: zap.NewNop(), JS: js}

	if err := p.EnsureStream(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if js.updated == nil || len(js.updated.Subjects) != 2 || js.updated.Subjects[1] != StreamSubject {
		t.Fatalf("expected subject to be appended, got %+v", js.updated)
	}
}

func TestEnsureStream_PropagatesLookupError(t *testing.T) {
	js := &fakeJS{infoErr: errors.New("timeout")}
	p := &Publisher{Log: zap.NewNop(), JS: js}
	if err := p.EnsureStream(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPublish_InOrder(t *testing.T) {
	js := &fakeJS{}
	p := &Publisher{Log: zap.NewNop(), JS: js}
	items := []outboxRow{
		{ID: "a", EventType: "library.movie.created", Payload: json.RawMessage(`{"ids":[1]}`)},
		{ID: "b", EventType: "library.movie.deleted", Payload: json.RawMessage(`{"ids":[1]}`)},
	}

	ids, err := p.publish(context.Background(), items)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids %v", ids)
	}
	if js.published[0] != "library.movie.created" || js.published[1] != "library.movie.deleted" {
		t.Fatalf("unexpected subjects %v", js.published)
	}
}

func TestPublish_StopsOnFailure(t *testing.T) {
	js := &fakeJS{failAfter: 1}
	p := &Publisher{Log: zap.NewNop(), JS: js}
	items := []outboxRow{
		{ID: "a", EventType: "library.genre.created"},
		{ID: "b", EventType: "library.genre.updated"},
	}
	if _, err := p.publish(context.Background(), items); err == nil {
		t.Fatal("expected error so the batch stays pending")
	}
}
