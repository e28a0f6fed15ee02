package model

import (
	"slices"
	"time"
)

// Contribution 作者在某篇文章中的参与记录
type Contribution struct {
	ArticleID string           `json:"article_id"`
	Role      ContributionRole `json:"role"`
}

// Author 作者，按外部用户 id 幂等绑定
type Author struct {
	ID            string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID        string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Name          string         `gorm:"type:varchar(255)" json:"name"`
	AvatarURL     string         `gorm:"type:varchar(512)" json:"avatar_url"`
	ArticleIDs    []string       `gorm:"serializer:json;type:jsonb" json:"article_ids"`
	Contributions []Contribution `gorm:"serializer:json;type:jsonb" json:"contributions"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (a *Author) GetID() string { return a.ID }

// AddContribution 记录参与，重复记录忽略，返回是否有变化
func (a *Author) AddContribution(articleID string, role ContributionRole) bool {
	changed := false
	if !slices.Contains(a.ArticleIDs, articleID) {
		a.ArticleIDs = append(a.ArticleIDs, articleID)
		changed = true
	}
	c := Contribution{ArticleID: articleID, Role: role}
	if !slices.Contains(a.Contributions, c) {
		a.Contributions = append(a.Contributions, c)
		changed = true
	}
	return changed
}
