package realtime

// Server-to-client event names pushed through the presence registry.
const (
	EventNewMessage        = "newMessage"
	EventNewNotification   = "newNotification"
	EventUpdateUnreadCount = "updateUnreadCount"
	EventMessagesRead      = "messagesRead"
)
