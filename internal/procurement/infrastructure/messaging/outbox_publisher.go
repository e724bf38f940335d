package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
	"gorm.io/gorm"
)

// OutboxMessage 消息队列
type OutboxMessage struct {
	ID        string    `gorm:"type:varchar(36);primary_key"`
	EventID   string    `gorm:"type:varchar(36);index"`
	EventType string    `gorm:"type:varchar(100);index"`
	Payload   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);index;default:'pending'"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "procurement_outbox_messages"
}

// OutboxEventPublisher 实现 EventPublisher 接口，使用 Outbox 模式。
// outbox 记录通过 contextx 复用调用方事务，与业务写入一同提交或回滚。
type OutboxEventPublisher struct {
	db *gorm.DB
}

// NewOutboxEventPublisher 创建新的 OutboxEventPublisher 实例
func NewOutboxEventPublisher(db *gorm.DB) *OutboxEventPublisher {
	return &OutboxEventPublisher{db: db}
}

// PublishRiskRecomputed 发布风险重算完成事件
func (p *OutboxEventPublisher) PublishRiskRecomputed(ctx context.Context, event domain.TenderRiskRecomputedEvent) error {
	return p.publishEvent(ctx, domain.TenderRiskRecomputedEventType, event)
}

// publishEvent 通用事件发布方法
func (p *OutboxEventPublisher) publishEvent(ctx context.Context, eventType string, event any) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	message := OutboxMessage{
		ID:        uuid.NewString(),
		EventID:   uuid.NewString(),
		EventType: eventType,
		Payload:   string(eventData),
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return p.getDB(ctx).WithContext(ctx).Create(&message).Error
}

// ProcessOutboxMessages 处理待处理的消息
func (p *OutboxEventPublisher) ProcessOutboxMessages(ctx context.Context, batchSize int) error {
	var messages []OutboxMessage
	if err := p.db.WithContext(ctx).Where("status = ?", "pending").Limit(batchSize).Find(&messages).Error; err != nil {
		return err
	}

	for _, message := range messages {
		// 投递到消息代理由部署环境的中继完成，这里只推进状态
		if err := p.db.WithContext(ctx).Model(&message).Update("status", "sent").Error; err != nil {
			return err
		}
	}
	return nil
}

// CleanupProcessedMessages 清理已处理的消息
func (p *OutboxEventPublisher) CleanupProcessedMessages(ctx context.Context, before time.Time) error {
	return p.db.WithContext(ctx).Where("status = ? AND updated_at < ?", "sent", before).Delete(&OutboxMessage{}).Error
}

func (p *OutboxEventPublisher) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return p.db
}
