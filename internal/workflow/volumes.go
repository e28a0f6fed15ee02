package workflow

import (
	"context"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
)

// CreateVolume 创建期刊，初始状态为 InReview
func (s *Service) CreateVolume(ctx context.Context, callerID string, cmd command.CreateVolume, commentary string) (Result[*model.Volume], error) {
	return routed[*model.Volume](s.route(ctx, request{
		callerID:   callerID,
		targetID:   s.newID(),
		cmd:        cmd,
		commentary: commentary,
		direct:     permission.CanEditVolume,
	}))
}

// UpdateVolume 修改期刊信息
func (s *Service) UpdateVolume(ctx context.Context, callerID, volumeID string, cmd command.UpdateVolume, commentary string) (Result[*model.Volume], error) {
	if _, err := s.repos.Volumes.GetByID(ctx, nil, volumeID); err != nil {
		return Result[*model.Volume]{}, err
	}
	return routed[*model.Volume](s.route(ctx, request{
		callerID:   callerID,
		targetID:   volumeID,
		cmd:        cmd,
		commentary: commentary,
		direct:     permission.CanEditVolume,
	}))
}
