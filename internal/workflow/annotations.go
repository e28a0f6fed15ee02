package workflow

import (
	"context"

	"terminal-terrace/editorial/internal/history"
	"terminal-terrace/editorial/internal/model"
)

func (s *Service) actor(ctx context.Context, callerID string) (history.Actor, error) {
	if callerID == "" {
		return history.Actor{}, ErrUnauthorized
	}
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return history.Actor{}, err
	}
	return history.Actor{UserID: callerID, Staff: staff}, nil
}

// AddStaffComment 在内容版本上添加批注
func (s *Service) AddStaffComment(ctx context.Context, callerID, historyID, text string, parentID *string) (*model.StaffComment, error) {
	actor, err := s.actor(ctx, callerID)
	if err != nil {
		return nil, err
	}
	clean, err := s.sanitize(text)
	if err != nil {
		return nil, err
	}
	return s.history.AddStaffComment(ctx, historyID, actor, clean, parentID)
}

// UpdateStaffComment 修改自己的批注
func (s *Service) UpdateStaffComment(ctx context.Context, callerID, historyID, commentID, text string) (*model.StaffComment, error) {
	actor, err := s.actor(ctx, callerID)
	if err != nil {
		return nil, err
	}
	clean, err := s.sanitize(text)
	if err != nil {
		return nil, err
	}
	return s.history.UpdateStaffComment(ctx, historyID, commentID, actor, clean)
}

// DeleteStaffComment 删除批注
func (s *Service) DeleteStaffComment(ctx context.Context, callerID, historyID, commentID string) error {
	actor, err := s.actor(ctx, callerID)
	if err != nil {
		return err
	}
	return s.history.DeleteStaffComment(ctx, historyID, commentID, actor)
}
