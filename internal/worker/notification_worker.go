package worker

import (
	"github.com/spec-kit/sponsorship-portal/internal/events"
	"github.com/spec-kit/sponsorship-portal/internal/service"
)

// StartNotificationWorker subscribes the notification service to the quote
// lifecycle: submission alerts the institution, a status decision alerts the
// vendor.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	dispatcher.Subscribe(events.EventQuoteSubmitted, notifications.HandleQuoteSubmitted)
	dispatcher.Subscribe(events.EventQuoteStatusChanged, notifications.HandleQuoteStatusChanged)
}
