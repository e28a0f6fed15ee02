package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/metrics"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
)

// request 一次受控命令
type request struct {
	callerID   string
	targetID   string
	cmd        command.Command
	commentary string
	// direct 非 Bolsista 调用方能否直接执行
	direct func(staff *model.Staff) bool
}

// route 审批闸门
//  1. Bolsista：命令写入待审批请求，目标实体不变
//  2. 有直接执行权的调用方：立即执行
//  3. 其他：ErrUnauthorized
func (s *Service) route(ctx context.Context, req request) (any, *model.Pending, error) {
	tag := string(req.cmd.Type())
	log := s.log.WithFields(logrus.Fields{
		"command":   tag,
		"caller_id": req.callerID,
		"target_id": req.targetID,
	})

	if err := req.cmd.Validate(); err != nil {
		metrics.RecordCommand(tag, metrics.OutcomeError)
		return nil, nil, err
	}

	staff, err := s.staffOf(ctx, req.callerID)
	if err != nil {
		metrics.RecordCommand(tag, metrics.OutcomeError)
		return nil, nil, err
	}

	if permission.IsBolsista(staff) {
		if !permission.CanCreatePending(staff) {
			metrics.RecordCommand(tag, metrics.OutcomeDenied)
			return nil, nil, ErrUnauthorized
		}
		pending, err := s.enqueue(ctx, req.callerID, req.targetID, req.cmd, req.commentary)
		if err != nil {
			metrics.RecordCommand(tag, metrics.OutcomeError)
			return nil, nil, err
		}
		metrics.RecordCommand(tag, metrics.OutcomeDeferred)
		log.WithFields(logrus.Fields{"outcome": metrics.OutcomeDeferred, "pending_id": pending.ID}).Info("命令已转为待审批请求")
		return nil, pending, nil
	}

	if req.direct == nil || !req.direct(staff) {
		metrics.RecordCommand(tag, metrics.OutcomeDenied)
		log.WithField("outcome", metrics.OutcomeDenied).Warn("无权限执行命令")
		return nil, nil, ErrUnauthorized
	}

	result, err := s.execute(ctx, nil, req.targetID, req.cmd)
	if err != nil {
		metrics.RecordCommand(tag, metrics.OutcomeError)
		log.WithError(err).Warn("命令执行失败")
		return nil, nil, err
	}
	s.afterExecute(ctx, result)

	metrics.RecordCommand(tag, metrics.OutcomeDirect)
	log.WithField("outcome", metrics.OutcomeDirect).Info("命令已执行")
	return result, nil, nil
}

// routed 将 route 的结果转换为带类型的 Result
func routed[T any](value any, pending *model.Pending, err error) (Result[T], error) {
	if err != nil {
		return Result[T]{}, err
	}
	if pending != nil {
		return Result[T]{Pending: pending}, nil
	}
	v, _ := value.(T)
	return Result[T]{Value: v}, nil
}

// enqueue 序列化命令并保存为待审批请求
func (s *Service) enqueue(ctx context.Context, requesterID, targetID string, cmd command.Command, commentary string) (*model.Pending, error) {
	payload, err := command.Encode(cmd)
	if err != nil {
		return nil, err
	}
	p := &model.Pending{
		ID:            s.newID(),
		TargetID:      targetID,
		TargetType:    cmd.TargetType(),
		CommandType:   string(cmd.Type()),
		CommandParams: payload,
		RequesterID:   requesterID,
		Commentary:    strings.TrimSpace(commentary),
		Status:        model.PendingAwaitingReview,
		CreatedAt:     s.now(),
	}
	if err := s.repos.Pending.Add(ctx, nil, p); err != nil {
		return nil, fmt.Errorf("save pending: %w", err)
	}
	return p, nil
}

// PendingInput 通用的待审批请求
type PendingInput struct {
	TargetID      string
	TargetType    model.TargetType
	CommandType   string
	CommandParams string
	Commentary    string
}

// CreatePendingRequest 直接提交一条待审批请求，命令必须可被识别且参数合法
func (s *Service) CreatePendingRequest(ctx context.Context, callerID string, in PendingInput) (*model.Pending, error) {
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !permission.CanCreatePending(staff) {
		return nil, ErrUnauthorized
	}

	cmd, err := command.Decode(in.CommandType, in.CommandParams)
	if err != nil {
		return nil, err
	}
	if in.TargetType != "" && in.TargetType != cmd.TargetType() {
		return nil, fmt.Errorf("%w: %s targets %s, not %s", ErrInvalidOperation, cmd.Type(), cmd.TargetType(), in.TargetType)
	}

	targetID := in.TargetID
	switch cmd.(type) {
	case command.CreateStaff, command.CreateVolume:
		if targetID == "" {
			targetID = s.newID()
		}
	default:
		if err := s.targetExists(ctx, cmd.TargetType(), targetID); err != nil {
			return nil, err
		}
	}

	pending, err := s.enqueue(ctx, callerID, targetID, cmd, in.Commentary)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"command":    cmd.Type(),
		"caller_id":  callerID,
		"target_id":  targetID,
		"pending_id": pending.ID,
	}).Info("已创建待审批请求")
	return pending, nil
}

func (s *Service) targetExists(ctx context.Context, t model.TargetType, id string) error {
	var err error
	switch t {
	case model.TargetArticle:
		_, err = s.repos.Articles.GetByID(ctx, nil, id)
	case model.TargetEditorial:
		_, err = s.repos.Editorials.GetByID(ctx, nil, id)
	case model.TargetStaff:
		_, err = s.repos.Staff.GetByID(ctx, nil, id)
	case model.TargetVolume:
		_, err = s.repos.Volumes.GetByID(ctx, nil, id)
	case model.TargetInteraction:
		_, err = s.repos.Interactions.GetByID(ctx, nil, id)
	default:
		err = fmt.Errorf("%w: unknown target type %q", ErrInvalidInput, t)
	}
	return err
}
