package model

import "gorm.io/gorm"

// Entity 可按字符串 id 存取的实体
type Entity interface {
	GetID() string
}

// InitTable 自动迁移数据库表结构
func InitTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&Article{},
		&EditorialRecord{},
		&ContentHistory{},
		&Author{},
		&Staff{},
		&Volume{},
		&Interaction{},
		&Pending{},
	)
}
