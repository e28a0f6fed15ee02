// Package identity 调用方身份解析：外部用户 id -> 员工记录
package identity

import (
	"context"
	"errors"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
)

// Resolver 员工身份解析，非员工返回 (nil, nil)
type Resolver interface {
	StaffByUserID(ctx context.Context, userID string) (*model.Staff, error)
	// Invalidate 员工记录变更后清除缓存
	Invalidate(ctx context.Context, userID string) error
}

// StoreResolver 直接查询员工仓储
type StoreResolver struct {
	staff store.StaffRepository
}

func NewStoreResolver(staff store.StaffRepository) *StoreResolver {
	return &StoreResolver{staff: staff}
}

func (r *StoreResolver) StaffByUserID(ctx context.Context, userID string) (*model.Staff, error) {
	if userID == "" {
		return nil, nil
	}
	s, err := r.staff.GetByUserID(ctx, nil, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StoreResolver) Invalidate(context.Context, string) error {
	return nil
}
