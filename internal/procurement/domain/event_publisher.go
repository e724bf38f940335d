package domain

import "context"

// EventPublisher 集成事件发布接口。实现方需保证与当前事务一同提交。
type EventPublisher interface {
	PublishRiskRecomputed(ctx context.Context, event TenderRiskRecomputedEvent) error
}
