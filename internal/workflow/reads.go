package workflow

import (
	"context"
	"fmt"

	"terminal-terrace/editorial/internal/history"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
)

// ArticleDetail 文章与当前版本
type ArticleDetail struct {
	Article *model.Article        `json:"article"`
	Content *model.ContentHistory `json:"content"`
	// Access 调用方的读取权限来源
	Access permission.AccessSource `json:"access"`
}

// GetArticle 读取文章，公开读者看不到内部批注
func (s *Service) GetArticle(ctx context.Context, callerID, articleID string) (*ArticleDetail, error) {
	a, e, err := s.articleWithTeam(ctx, articleID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	access := permission.ReadAccess(a, e.Team, staff, callerID)
	if access == permission.SourceNone {
		return nil, ErrUnauthorized
	}

	current, err := s.repos.Histories.GetByID(ctx, nil, e.CurrentHistoryID)
	if err != nil {
		return nil, err
	}
	if access == permission.SourcePublic && !permission.IsStaff(staff) && !e.Team.Contains(callerID) {
		current.StaffComments = nil
	}
	return &ArticleDetail{Article: a, Content: current, Access: access}, nil
}

// ListArticles 文章列表，非员工只能看到已发布文章
func (s *Service) ListArticles(ctx context.Context, callerID string, filter store.ArticleFilter, page store.Page) (Page[*model.Article], error) {
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return Page[*model.Article]{}, err
	}
	if !permission.IsStaff(staff) {
		filter.Statuses = []model.ArticleStatus{model.ArticlePublished}
	}

	page = page.Normalize()
	items, total, err := s.repos.Articles.List(ctx, nil, filter, page)
	if err != nil {
		return Page[*model.Article]{}, err
	}
	return newPage(items, total, page), nil
}

// internalAccess 员工或团队成员才能访问编辑流程数据
func (s *Service) internalAccess(ctx context.Context, callerID, articleID string) (*model.EditorialRecord, error) {
	e, err := s.repos.Editorials.GetByArticleID(ctx, nil, articleID)
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
	return e, nil
}

// GetEditorialRecord 编辑记录
func (s *Service) GetEditorialRecord(ctx context.Context, callerID, articleID string) (*model.EditorialRecord, error) {
	return s.internalAccess(ctx, callerID, articleID)
}

// ListVersions 文章的全部版本
func (s *Service) ListVersions(ctx context.Context, callerID, articleID string) ([]*model.ContentHistory, error) {
	if _, err := s.internalAccess(ctx, callerID, articleID); err != nil {
		return nil, err
	}
	return s.history.Versions(ctx, articleID)
}

// GetVersion 单个版本
func (s *Service) GetVersion(ctx context.Context, callerID, historyID string) (*model.ContentHistory, error) {
	h, err := s.history.Get(ctx, historyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.internalAccess(ctx, callerID, h.ArticleID); err != nil {
		return nil, err
	}
	return h, nil
}

// DiffVersions 比较两个版本
func (s *Service) DiffVersions(ctx context.Context, callerID, fromID, toID string) (*history.Diff, error) {
	from, err := s.history.Get(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if _, err := s.internalAccess(ctx, callerID, from.ArticleID); err != nil {
		return nil, err
	}
	d, err := s.history.DiffVersions(ctx, fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}
	return d, nil
}

// ListInteractions 评论列表
// 内部评论仅员工与团队成员可见，其他调用方只能读取公开评论
func (s *Service) ListInteractions(ctx context.Context, callerID, articleID string, kind model.InteractionKind, page store.Page) (Page[*model.Interaction], error) {
	a, e, err := s.articleWithTeam(ctx, articleID)
	if err != nil {
		return Page[*model.Interaction]{}, err
	}
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return Page[*model.Interaction]{}, err
	}
	if !permission.CanRead(a, e.Team, staff, callerID) {
		return Page[*model.Interaction]{}, ErrUnauthorized
	}

	internal := permission.IsStaff(staff) || e.Team.Contains(callerID)
	switch {
	case kind == model.EditorialComment && !internal:
		return Page[*model.Interaction]{}, ErrUnauthorized
	case kind == "" && !internal:
		kind = model.PublicComment
	}

	page = page.Normalize()
	items, total, err := s.repos.Interactions.List(ctx, nil, store.InteractionFilter{ArticleID: articleID, Kind: kind}, page)
	if err != nil {
		return Page[*model.Interaction]{}, err
	}
	return newPage(items, total, page), nil
}

// ListPendingRequests 待审批请求列表，仅员工
func (s *Service) ListPendingRequests(ctx context.Context, callerID string, filter store.PendingFilter, page store.Page) (Page[*model.Pending], error) {
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return Page[*model.Pending]{}, err
	}
	if !permission.IsStaff(staff) {
		return Page[*model.Pending]{}, ErrUnauthorized
	}

	page = page.Normalize()
	items, total, err := s.repos.Pending.List(ctx, nil, filter, page)
	if err != nil {
		return Page[*model.Pending]{}, err
	}
	return newPage(items, total, page), nil
}

// GetPendingRequest 单个待审批请求，仅员工
func (s *Service) GetPendingRequest(ctx context.Context, callerID, pendingID string) (*model.Pending, error) {
	staff, err := s.staffOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !permission.IsStaff(staff) {
		return nil, ErrUnauthorized
	}
	return s.repos.Pending.GetByID(ctx, nil, pendingID)
}

// GetStaff 按外部用户 id 查询员工记录
func (s *Service) GetStaff(ctx context.Context, userID string) (*model.Staff, error) {
	staff, err := s.staffOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, fmt.Errorf("staff for user %s: %w", userID, ErrNotFound)
	}
	return staff, nil
}

// ListStaff 员工列表，仅员工
func (s *Service) ListStaff(ctx context.Context, callerID string, page store.Page) (Page[*model.Staff], error) {
	caller, err := s.staffOf(ctx, callerID)
	if err != nil {
		return Page[*model.Staff]{}, err
	}
	if !permission.IsStaff(caller) {
		return Page[*model.Staff]{}, ErrUnauthorized
	}

	page = page.Normalize()
	items, total, err := s.repos.Staff.List(ctx, nil, page)
	if err != nil {
		return Page[*model.Staff]{}, err
	}
	return newPage(items, total, page), nil
}

// GetVolume 期刊
func (s *Service) GetVolume(ctx context.Context, volumeID string) (*model.Volume, error) {
	return s.repos.Volumes.GetByID(ctx, nil, volumeID)
}

// ListVolumes 期刊列表，按期号倒序
func (s *Service) ListVolumes(ctx context.Context, page store.Page) (Page[*model.Volume], error) {
	page = page.Normalize()
	items, total, err := s.repos.Volumes.List(ctx, nil, page)
	if err != nil {
		return Page[*model.Volume]{}, err
	}
	return newPage(items, total, page), nil
}
