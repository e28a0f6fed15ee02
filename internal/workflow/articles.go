package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

// AuthorRef 外部用户引用，名称与头像为冗余展示字段
type AuthorRef struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CreateArticleInput 创建文章参数
type CreateArticleInput struct {
	Title               string
	Summary             string
	Type                model.ArticleType
	Authors             []AuthorRef
	UnlistedAuthorNames []string
	VolumeID            *string
	AllowComments       bool
	Content             string
	Media               []model.Media
}

func (in CreateArticleInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown article type %q", ErrInvalidInput, in.Type)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrInvalidInput)
	}
	return nil
}

// CreateArticle 创建文章
// 文章、编辑记录、初始版本与作者在同一事务中写入；调用方不在作者列表中时放在首位
func (s *Service) CreateArticle(ctx context.Context, callerID string, in CreateArticleInput) (*model.Article, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	authors := make([]AuthorRef, 0, len(in.Authors)+1)
	if !slices.ContainsFunc(in.Authors, func(a AuthorRef) bool { return a.UserID == callerID }) {
		authors = append(authors, AuthorRef{UserID: callerID})
	}
	for _, a := range in.Authors {
		if a.UserID == "" || slices.ContainsFunc(authors, func(b AuthorRef) bool { return b.UserID == a.UserID }) {
			continue
		}
		authors = append(authors, a)
	}

	var article *model.Article
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, tx *txn.Tx) error {
		now := s.now()
		a := &model.Article{
			ID:                  s.newID(),
			Title:               strings.TrimSpace(in.Title),
			Summary:             in.Summary,
			Status:              model.ArticleDraft,
			Type:                in.Type,
			UnlistedAuthorNames: slices.Clone(in.UnlistedAuthorNames),
			AllowComments:       in.AllowComments,
			CreatedAt:           now,
			EditedAt:            now,
		}
		e := &model.EditorialRecord{
			ID:         s.newID(),
			ArticleID:  a.ID,
			Position:   model.PositionSubmitted,
			HistoryIDs: []string{},
			CommentIDs: []string{},
			UpdatedAt:  now,
		}
		a.EditorialID = e.ID

		for _, ref := range authors {
			author, err := s.upsertAuthor(ctx, tx, ref, a.ID, model.RoleAuthor)
			if err != nil {
				return err
			}
			a.AuthorIDs = append(a.AuthorIDs, author.ID)
			e.Team.AuthorIDs = append(e.Team.AuthorIDs, ref.UserID)
		}

		if in.VolumeID != nil && *in.VolumeID != "" {
			if err := s.moveToVolume(ctx, tx, a, *in.VolumeID); err != nil {
				return err
			}
		}
		if len(in.Media) > 0 {
			featured := in.Media[0]
			a.FeaturedMedia = &featured
		}

		if err := s.repos.Articles.Add(ctx, tx, a); err != nil {
			return fmt.Errorf("add article: %w", err)
		}
		if err := s.repos.Editorials.Add(ctx, tx, e); err != nil {
			return fmt.Errorf("add editorial: %w", err)
		}
		if _, err := s.history.CreateInitialVersion(ctx, tx, a.ID, in.Content, in.Media); err != nil {
			return err
		}

		stored, err := s.repos.Articles.GetByID(ctx, tx, a.ID)
		if err != nil {
			return err
		}
		article = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("article_id", article.ID).WithField("caller_id", callerID).Info("文章已创建")
	return article, nil
}

// articleWithTeam 读取文章与编辑记录
func (s *Service) articleWithTeam(ctx context.Context, articleID string) (*model.Article, *model.EditorialRecord, error) {
	a, err := s.repos.Articles.GetByID(ctx, nil, articleID)
	if err != nil {
		return nil, nil, err
	}
	e, err := s.repos.Editorials.GetByArticleID(ctx, nil, articleID)
	if err != nil {
		return nil, nil, err
	}
	return a, e, nil
}

// UpdateArticleMetadata 修改文章基本信息
// 团队成员与有编辑权的员工直接执行，Bolsista 转为待审批请求
func (s *Service) UpdateArticleMetadata(ctx context.Context, callerID, articleID string, cmd command.UpdateArticleMetadata, commentary string) (Result[*model.Article], error) {
	a, e, err := s.articleWithTeam(ctx, articleID)
	if err != nil {
		return Result[*model.Article]{}, err
	}
	return routed[*model.Article](s.route(ctx, request{
		callerID:   callerID,
		targetID:   articleID,
		cmd:        cmd,
		commentary: commentary,
		direct: func(staff *model.Staff) bool {
			return permission.CanEdit(a, e.Team, staff, callerID) || permission.HasDirectRights(staff)
		},
	}))
}

// UpdateArticleContent 提交新的内容版本
func (s *Service) UpdateArticleContent(ctx context.Context, callerID, articleID string, cmd command.UpdateArticleContent, commentary string) (Result[*model.ContentHistory], error) {
	a, e, err := s.articleWithTeam(ctx, articleID)
	if err != nil {
		return Result[*model.ContentHistory]{}, err
	}
	return routed[*model.ContentHistory](s.route(ctx, request{
		callerID:   callerID,
		targetID:   articleID,
		cmd:        cmd,
		commentary: commentary,
		direct: func(staff *model.Staff) bool {
			return permission.CanEdit(a, e.Team, staff, callerID) || permission.HasDirectRights(staff)
		},
	}))
}

// ChangeArticleStatus 修改文章状态，未指定流程位置时按状态推导
func (s *Service) ChangeArticleStatus(ctx context.Context, callerID, articleID string, cmd command.ChangeArticleStatus, commentary string) (Result[*model.Article], error) {
	if _, err := s.repos.Articles.GetByID(ctx, nil, articleID); err != nil {
		return Result[*model.Article]{}, err
	}
	return routed[*model.Article](s.route(ctx, request{
		callerID:   callerID,
		targetID:   articleID,
		cmd:        cmd,
		commentary: commentary,
		direct: func(staff *model.Staff) bool {
			return permission.CanModifyStatus(staff) || permission.HasDirectRights(staff)
		},
	}))
}

// UpdateEditorialTeam 修改编辑团队，目标为文章的编辑记录
func (s *Service) UpdateEditorialTeam(ctx context.Context, callerID, articleID string, cmd command.UpdateEditorialTeam, commentary string) (Result[*model.EditorialRecord], error) {
	e, err := s.repos.Editorials.GetByArticleID(ctx, nil, articleID)
	if err != nil {
		return Result[*model.EditorialRecord]{}, err
	}
	return routed[*model.EditorialRecord](s.route(ctx, request{
		callerID:   callerID,
		targetID:   e.ID,
		cmd:        cmd,
		commentary: commentary,
		direct:     permission.CanEditTeam,
	}))
}

// UpsertAuthor 按外部用户 id 绑定作者记录，重复调用只刷新展示字段
func (s *Service) UpsertAuthor(ctx context.Context, userID, name, avatarURL string) (*model.Author, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.upsertAuthor(ctx, nil, AuthorRef{UserID: userID, Name: name, AvatarURL: avatarURL}, "", "")
}

// upsertAuthor articleID 非空时记录一次贡献，已存在的贡献不重复记录
func (s *Service) upsertAuthor(ctx context.Context, tx *txn.Tx, ref AuthorRef, articleID string, role model.ContributionRole) (*model.Author, error) {
	now := s.now()
	author, err := s.repos.Authors.GetByUserID(ctx, tx, ref.UserID)
	if errors.Is(err, store.ErrNotFound) {
		author = &model.Author{
			ID:            s.newID(),
			UserID:        ref.UserID,
			Name:          ref.Name,
			AvatarURL:     ref.AvatarURL,
			ArticleIDs:    []string{},
			Contributions: []model.Contribution{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if articleID != "" {
			author.AddContribution(articleID, role)
		}
		if err := s.repos.Authors.Add(ctx, tx, author); err != nil {
			return nil, fmt.Errorf("add author: %w", err)
		}
		return author, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if ref.Name != "" && ref.Name != author.Name {
		author.Name = ref.Name
		changed = true
	}
	if ref.AvatarURL != "" && ref.AvatarURL != author.AvatarURL {
		author.AvatarURL = ref.AvatarURL
		changed = true
	}
	if articleID != "" && author.AddContribution(articleID, role) {
		changed = true
	}
	if !changed {
		return author, nil
	}
	author.UpdatedAt = now
	if err := s.repos.Authors.Update(ctx, tx, author); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return author, nil
}
