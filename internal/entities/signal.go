package entities

// Темы шины событий.
const (
	TopicOrderCreated   = "order:created"
	TopicOrderCancelled = "order:cancelled"
	TopicOrdersRefresh  = "orders:refresh"
)

// RefreshTopics - темы, по которым нужно перечитать заказы.
var RefreshTopics = []string{TopicOrderCreated, TopicOrderCancelled, TopicOrdersRefresh}
