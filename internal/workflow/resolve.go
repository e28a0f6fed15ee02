package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/metrics"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/txn"
)

// ResolvePendingRequest 处理待审批请求
//
// 拒绝只修改请求状态；批准时在同一事务内重放命令并标记 Approved。
// 重放失败时整个事务回滚，请求保持 AwaitingReview，返回 ErrResolutionFailed。
func (s *Service) ResolvePendingRequest(ctx context.Context, pendingID, callerID string, approve bool) (*model.Pending, error) {
	log := s.log.WithFields(logrus.Fields{
		"pending_id": pendingID,
		"caller_id":  callerID,
		"approve":    approve,
	})

	var (
		resolved *model.Pending
		result   any
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		p, err := s.repos.Pending.GetForUpdate(ctx, tx, pendingID)
		if err != nil {
			return err
		}

		staff, err := s.staffOf(ctx, callerID)
		if err != nil {
			return err
		}
		if !permission.CanResolvePending(staff) {
			return ErrUnauthorized
		}
		if !p.Open() {
			return fmt.Errorf("%w: pending %s is already %s", ErrInvalidOperation, p.ID, p.Status)
		}

		if approve {
			result, err = s.replay(ctx, tx, p)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrResolutionFailed, err)
			}
			p.Status = model.PendingApproved
		} else {
			p.Status = model.PendingRejected
		}

		now := s.now()
		approver := callerID
		p.ApproverID = &approver
		p.ResolvedAt = &now
		if err := s.repos.Pending.Update(ctx, tx, p); err != nil {
			return err
		}
		resolved = p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResolutionFailed) {
			metrics.RecordResolution(metrics.ResolutionFailed)
			log.WithError(err).WithField("result", metrics.ResolutionFailed).Error("审批执行失败，事务已回滚")
		}
		return nil, err
	}

	s.afterExecute(ctx, result)

	outcome := metrics.ResolutionRejected
	if approve {
		outcome = metrics.ResolutionApproved
	}
	metrics.RecordResolution(outcome)
	log.WithFields(logrus.Fields{
		"command":   resolved.CommandType,
		"target_id": resolved.TargetID,
		"result":    outcome,
	}).Info("待审批请求已处理")
	return resolved, nil
}

// replay 反序列化请求中的命令并以存储的目标 id 执行
func (s *Service) replay(ctx context.Context, tx *txn.Tx, p *model.Pending) (any, error) {
	cmd, err := command.Decode(p.CommandType, p.CommandParams)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, tx, p.TargetID, cmd)
}
