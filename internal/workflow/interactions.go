package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/txn"
)

// CommentInput 新评论
type CommentInput struct {
	ArticleID string
	UserName  string
	Content   string
	ParentID  *string
}

// sanitize 过滤评论中的 html，过滤后为空视为非法输入
func (s *Service) sanitize(text string) (string, error) {
	clean := strings.TrimSpace(s.policy.Sanitize(text))
	if clean == "" {
		return "", fmt.Errorf("%w: comment must not be empty", ErrInvalidInput)
	}
	return clean, nil
}

// CreatePublicComment 发表公开评论，文章必须已发布且允许评论
func (s *Service) CreatePublicComment(ctx context.Context, callerID string, in CommentInput) (*model.Interaction, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	a, err := s.repos.Articles.GetByID(ctx, nil, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if a.Status != model.ArticlePublished {
		return nil, fmt.Errorf("%w: article %s is not published", ErrInvalidOperation, a.ID)
	}
	if !a.AllowComments {
		return nil, fmt.Errorf("%w: comments are disabled on article %s", ErrInvalidOperation, a.ID)
	}
	return s.addInteraction(ctx, callerID, in, model.PublicComment)
}

// CreateEditorialComment 发表编辑部内部评论，仅员工与团队成员
func (s *Service) CreateEditorialComment(ctx context.Context, callerID string, in CommentInput) (*model.Interaction, error) {
	_, e, err := s.articleWithTeam(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !permission.IsStaff(staff) && !e.Team.Contains(callerID) {
		return nil, ErrUnauthorized
	}

	i, err := s.addInteraction(ctx, callerID, in, model.EditorialComment)
	if err != nil {
		return nil, err
	}

	e, err = s.repos.Editorials.GetByID(ctx, nil, e.ID)
	if err == nil {
		e.CommentIDs = append(e.CommentIDs, i.ID)
		e.UpdatedAt = s.now()
		err = s.repos.Editorials.Update(ctx, nil, e)
	}
	if err != nil {
		s.log.WithError(err).WithField("interaction_id", i.ID).Warn("更新编辑记录评论列表失败")
	}
	return i, nil
}

func (s *Service) addInteraction(ctx context.Context, callerID string, in CommentInput, kind model.InteractionKind) (*model.Interaction, error) {
	content, err := s.sanitize(in.Content)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := s.repos.Interactions.GetByID(ctx, nil, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ArticleID != in.ArticleID {
			return nil, fmt.Errorf("%w: parent comment belongs to another article", ErrInvalidOperation)
		}
		if parent.Kind != kind {
			return nil, fmt.Errorf("%w: cannot reply to a %s with a %s", ErrInvalidOperation, parent.Kind, kind)
		}
	}

	i := &model.Interaction{
		ID:        s.newID(),
		ArticleID: in.ArticleID,
		UserID:    callerID,
		UserName:  in.UserName,
		Content:   content,
		Kind:      kind,
		CreatedAt: s.now(),
	}
	if in.ParentID != nil && *in.ParentID != "" {
		parentID := *in.ParentID
		i.ParentID = &parentID
	}
	if err := s.repos.Interactions.Add(ctx, nil, i); err != nil {
		return nil, fmt.Errorf("add interaction: %w", err)
	}

	// 计数器单独写入，失败只记录日志
	s.adjustCommentCount(ctx, nil, i.ArticleID, kind, 1)
	return i, nil
}

// adjustCommentCount 更新文章上的评论计数，不低于 0
func (s *Service) adjustCommentCount(ctx context.Context, tx *txn.Tx, articleID string, kind model.InteractionKind, delta int) {
	log := s.log.WithFields(logrus.Fields{"article_id": articleID, "kind": kind})
	a, err := s.repos.Articles.GetByID(ctx, tx, articleID)
	if err != nil {
		log.WithError(err).Warn("读取文章失败，评论计数未更新")
		return
	}

	count := &a.PublicCommentCount
	if kind == model.EditorialComment {
		count = &a.EditorialCommentCount
	}
	*count = max(*count+delta, 0)

	if err := s.repos.Articles.Update(ctx, tx, a); err != nil {
		log.WithError(err).Warn("评论计数更新失败")
	}
}

// UpdateInteraction 修改评论，仅评论作者
func (s *Service) UpdateInteraction(ctx context.Context, callerID, interactionID, content string) (*model.Interaction, error) {
	i, err := s.repos.Interactions.GetByID(ctx, nil, interactionID)
	if err != nil {
		return nil, err
	}
	if callerID == "" || i.UserID != callerID {
		return nil, ErrUnauthorized
	}
	clean, err := s.sanitize(content)
	if err != nil {
		return nil, err
	}

	now := s.now()
	i.Content = clean
	i.EditedAt = &now
	if err := s.repos.Interactions.Update(ctx, nil, i); err != nil {
		return nil, err
	}
	return i, nil
}

// DeleteInteraction 删除评论
// 评论作者与有直接权限的员工直接删除，Bolsista 转为待审批请求
func (s *Service) DeleteInteraction(ctx context.Context, callerID, interactionID, reason string) (Result[*model.Interaction], error) {
	i, err := s.repos.Interactions.GetByID(ctx, nil, interactionID)
	if err != nil {
		return Result[*model.Interaction]{}, err
	}
	return routed[*model.Interaction](s.route(ctx, request{
		callerID:   callerID,
		targetID:   interactionID,
		cmd:        command.DeleteInteraction{Reason: reason},
		commentary: reason,
		direct: func(staff *model.Staff) bool {
			return permission.HasDirectRights(staff) || (callerID != "" && i.UserID == callerID)
		},
	}))
}
