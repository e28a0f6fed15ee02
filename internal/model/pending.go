package model

import "time"

// Pending 待审批请求，保存被推迟执行的命令
// 生命周期: AwaitingReview -> Approved | Rejected，不会重新打开
type Pending struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TargetID    string     `gorm:"type:varchar(64);not null;index" json:"target_id"`
	TargetType  TargetType `gorm:"type:varchar(32);not null" json:"target_type"`
	CommandType string     `gorm:"type:varchar(64);not null" json:"command_type"`
	// 命令参数，字段名为键的 JSON，枚举以名称保存
	CommandParams string        `gorm:"type:text;not null" json:"command_params"`
	RequesterID   string        `gorm:"type:varchar(64);not null;index" json:"requester_id"`
	Commentary    string        `gorm:"type:text" json:"commentary"`
	Status        PendingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	ApproverID    *string       `gorm:"type:varchar(64)" json:"approver_id,omitempty"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (p *Pending) GetID() string { return p.ID }

// Open 是否仍待处理
func (p *Pending) Open() bool {
	return p.Status == PendingAwaitingReview
}

func (Pending) TableName() string { return "pending_requests" }
