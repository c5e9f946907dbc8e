package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/sponsorship-portal/internal/config"
	"github.com/spec-kit/sponsorship-portal/internal/events"
	"github.com/spec-kit/sponsorship-portal/internal/service"
)

type recordingDispatcher struct {
	subscribed []events.EventType
}

func (d *recordingDispatcher) Publish(context.Context, events.Event) error { return nil }

func (d *recordingDispatcher) Subscribe(eventType events.EventType, _ events.EventHandler) {
	d.subscribed = append(d.subscribed, eventType)
}

func TestStartNotificationWorkerSubscribesQuoteLifecycle(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	notifications := service.NewNotificationService(zap.NewNop(), config.NotificationConfig{})

	StartNotificationWorker(dispatcher, notifications)
	assert.Equal(t, []events.EventType{
		events.EventQuoteSubmitted,
		events.EventQuoteStatusChanged,
	}, dispatcher.subscribed)

	// nil inputs register nothing
	StartNotificationWorker(nil, notifications)
	StartNotificationWorker(dispatcher, nil)
	assert.Len(t, dispatcher.subscribed, 2)
}
