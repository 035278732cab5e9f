package services

import "quorumhub/pkg/rabbitmq"

// EventPublisher is the slice of the broker client the content services
// need. A nil publisher disables eventing entirely; a publish failure
// is logged and swallowed so the API never depends on the broker.
type EventPublisher interface {
	PublishContentEvent(event rabbitmq.Event) error
}
