package rabbitmq

// NotificationsExchange carries every portal notification.
const NotificationsExchange = "notifications"

// RentUpcomingKey routes reminders for a rent due date that is close.
const RentUpcomingKey = "rent.upcoming"

// RentUpcomingQueue holds reminders waiting to be emailed.
const RentUpcomingQueue = "notification.rent_upcoming"

const prefetch = 10

// QueueConfig binds a queue to the exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues lists the queues the sender consumes.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RentUpcomingQueue, RoutingKey: RentUpcomingKey},
	}
}
