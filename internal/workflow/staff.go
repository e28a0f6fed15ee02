package workflow

import (
	"context"
	"errors"
	"fmt"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
)

// CreateStaff 创建员工，目标 id 在路由前生成，直接执行与审批重放得到同一个 id
func (s *Service) CreateStaff(ctx context.Context, callerID string, cmd command.CreateStaff, commentary string) (Result[*model.Staff], error) {
	existing, err := s.repos.Staff.GetByUserID(ctx, nil, cmd.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Result[*model.Staff]{}, err
	}
	if existing != nil {
		return Result[*model.Staff]{}, fmt.Errorf("%w: user %s is already staff", ErrInvalidOperation, cmd.UserID)
	}

	return routed[*model.Staff](s.route(ctx, request{
		callerID:   callerID,
		targetID:   s.newID(),
		cmd:        cmd,
		commentary: commentary,
		direct:     permission.CanCreateStaff,
	}))
}

// UpdateStaff 修改员工职级、在职状态或展示信息
func (s *Service) UpdateStaff(ctx context.Context, callerID, staffID string, cmd command.UpdateStaff, commentary string) (Result[*model.Staff], error) {
	if _, err := s.repos.Staff.GetByID(ctx, nil, staffID); err != nil {
		return Result[*model.Staff]{}, err
	}
	return routed[*model.Staff](s.route(ctx, request{
		callerID:   callerID,
		targetID:   staffID,
		cmd:        cmd,
		commentary: commentary,
		direct:     permission.HasDirectRights,
	}))
}
