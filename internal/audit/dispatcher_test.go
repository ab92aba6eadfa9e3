package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnos-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Handle(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Handle(ctx context.Context, _ Event) error {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
	return nil
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	failing := &recordingSink{err: errors.New("smtp down")}
	ok := &recordingSink{}
	d := NewDispatcher(failing, ok)

	d.Dispatch(Event{Action: ActionCreated, TurnoID: "a"})
	d.Dispatch(Event{Action: ActionConfirmed, TurnoID: "a"})
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, failing.events, 2)
	require.Len(t, ok.events, 2)
	assert.Equal(t, ActionCreated, ok.events[0].Action)
	assert.Equal(t, ActionConfirmed, ok.events[1].Action)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	blocker := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(blocker)

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize*3; i++ {
			d.Dispatch(Event{Action: ActionCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(blocker.release)
	require.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: ActionCreated}) })
}

func TestLogger_PersistsEvent(t *testing.T) {
	db := dbtest.New(t)
	at := time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC)

	err := New(db).Handle(context.Background(), Event{
		Action:   ActionConfirmed,
		TurnoID:  "turno-1",
		At:       at,
		Metadata: map[string]string{"hora": "10:00"},
	})
	require.NoError(t, err)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionConfirmed, logs[0].Action)
	assert.Equal(t, "turno-1", logs[0].TurnoID)
	assert.JSONEq(t, `{"hora":"10:00"}`, logs[0].Metadata)
}

func TestLogger_OmitsCancellationToken(t *testing.T) {
	db := dbtest.New(t)

	err := New(db).Handle(context.Background(), Event{
		Action:  ActionCreated,
		TurnoID: "turno-1",
		At:      time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC),
		Metadata: models.Turno{
			ID:               "turno-1",
			Hora:             "10:00",
			TokenCancelacion: "secret-token",
		},
	})
	require.NoError(t, err)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Metadata, `"hora":"10:00"`)
	assert.NotContains(t, logs[0].Metadata, "secret-token")
	assert.NotContains(t, logs[0].Metadata, "token_cancelacion")
}
