package noop

import (
	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
)

// Publisher discards events. Used when no broker is configured.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
