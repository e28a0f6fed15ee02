package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
)

var ErrEmptyComment = errors.New("comment text must not be empty")

// Actor 操作人：外部用户 id 与可能的员工记录
type Actor struct {
	UserID string
	Staff  *model.Staff
}

// annotatable 读取版本并检查批注权限
func (e *Engine) annotatable(ctx context.Context, historyID string, actor Actor) (*model.ContentHistory, error) {
	h, err := e.histories.GetByID(ctx, nil, historyID)
	if err != nil {
		return nil, err
	}
	editorial, err := e.editorials.GetByArticleID(ctx, nil, h.ArticleID)
	if err != nil {
		return nil, err
	}
	if !permission.CanAnnotate(editorial.Team, actor.Staff, actor.UserID) {
		return nil, permission.ErrUnauthorized
	}
	return h, nil
}

// AddStaffComment 在版本上添加批注，parentID 必须是同一版本上的批注
func (e *Engine) AddStaffComment(ctx context.Context, historyID string, actor Actor, text string, parentID *string) (*model.StaffComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	h, err := e.annotatable(ctx, historyID, actor)
	if err != nil {
		return nil, err
	}
	if parentID != nil && h.FindComment(*parentID) < 0 {
		return nil, fmt.Errorf("parent comment %s: %w", *parentID, store.ErrNotFound)
	}

	c := model.StaffComment{
		ID:        e.newID(),
		AuthorID:  actor.UserID,
		Text:      text,
		ParentID:  parentID,
		CreatedAt: e.now(),
	}
	h.StaffComments = append(h.StaffComments, c)
	if err := e.histories.Update(ctx, nil, h); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStaffComment 修改自己的批注
func (e *Engine) UpdateStaffComment(ctx context.Context, historyID, commentID string, actor Actor, text string) (*model.StaffComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	h, err := e.annotatable(ctx, historyID, actor)
	if err != nil {
		return nil, err
	}
	i := h.FindComment(commentID)
	if i < 0 {
		return nil, fmt.Errorf("comment %s: %w", commentID, store.ErrNotFound)
	}
	if h.StaffComments[i].AuthorID != actor.UserID {
		return nil, permission.ErrUnauthorized
	}

	now := e.now()
	h.StaffComments[i].Text = text
	h.StaffComments[i].EditedAt = &now
	if err := e.histories.Update(ctx, nil, h); err != nil {
		return nil, err
	}
	c := h.StaffComments[i]
	return &c, nil
}

// DeleteStaffComment 删除批注，作者本人或 EditorChefe/Administrador
// 回复不做处理，保留原 ParentID
func (e *Engine) DeleteStaffComment(ctx context.Context, historyID, commentID string, actor Actor) error {
	h, err := e.annotatable(ctx, historyID, actor)
	if err != nil {
		return err
	}
	i := h.FindComment(commentID)
	if i < 0 {
		return fmt.Errorf("comment %s: %w", commentID, store.ErrNotFound)
	}
	if h.StaffComments[i].AuthorID != actor.UserID && !permission.CanModerateComments(actor.Staff) {
		return permission.ErrUnauthorized
	}

	h.StaffComments = append(h.StaffComments[:i], h.StaffComments[i+1:]...)
	return e.histories.Update(ctx, nil, h)
}
