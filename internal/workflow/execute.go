package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/txn"
)

// execute 命令的唯一执行入口，直接执行与审批重放都经过这里
func (s *Service) execute(ctx context.Context, tx *txn.Tx, targetID string, cmd command.Command) (any, error) {
	switch c := cmd.(type) {
	case command.UpdateArticleMetadata:
		return s.applyArticleMetadata(ctx, tx, targetID, c)
	case command.ChangeArticleStatus:
		return s.applyArticleStatus(ctx, tx, targetID, c)
	case command.UpdateArticleContent:
		return s.applyArticleContent(ctx, tx, targetID, c)
	case command.UpdateEditorialTeam:
		return s.applyEditorialTeam(ctx, tx, targetID, c)
	case command.CreateStaff:
		return s.applyCreateStaff(ctx, tx, targetID, c)
	case command.UpdateStaff:
		return s.applyUpdateStaff(ctx, tx, targetID, c)
	case command.DeleteInteraction:
		return s.applyDeleteInteraction(ctx, tx, targetID)
	case command.CreateVolume:
		return s.applyCreateVolume(ctx, tx, targetID, c)
	case command.UpdateVolume:
		return s.applyUpdateVolume(ctx, tx, targetID, c)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

// afterExecute 事务之外的后续动作
func (s *Service) afterExecute(ctx context.Context, result any) {
	if staff, ok := result.(*model.Staff); ok && staff != nil {
		if err := s.identity.Invalidate(ctx, staff.UserID); err != nil {
			s.log.WithError(err).WithField("user_id", staff.UserID).Warn("清除员工缓存失败")
		}
	}
}

func (s *Service) applyArticleMetadata(ctx context.Context, tx *txn.Tx, articleID string, c command.UpdateArticleMetadata) (*model.Article, error) {
	a, err := s.repos.Articles.GetByID(ctx, tx, articleID)
	if err != nil {
		return nil, err
	}

	if c.Title != nil {
		a.Title = *c.Title
	}
	if c.Summary != nil {
		a.Summary = *c.Summary
	}
	if c.ArticleType != nil {
		a.Type = *c.ArticleType
	}
	if c.UnlistedAuthorNames != nil {
		a.UnlistedAuthorNames = slices.Clone(*c.UnlistedAuthorNames)
	}
	if c.AllowComments != nil {
		a.AllowComments = *c.AllowComments
	}
	if c.FeaturedMedia != nil {
		media := *c.FeaturedMedia
		a.FeaturedMedia = &media
	}
	if c.VolumeID != nil {
		if err := s.moveToVolume(ctx, tx, a, *c.VolumeID); err != nil {
			return nil, err
		}
	}

	a.EditedAt = s.now()
	if err := s.repos.Articles.Update(ctx, tx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// moveToVolume 在两个期刊的文章列表之间移动文章，volumeID 为空表示移出
func (s *Service) moveToVolume(ctx context.Context, tx *txn.Tx, a *model.Article, volumeID string) error {
	current := ""
	if a.VolumeID != nil {
		current = *a.VolumeID
	}
	if current == volumeID {
		return nil
	}

	if volumeID != "" {
		next, err := s.repos.Volumes.GetByID(ctx, tx, volumeID)
		if err != nil {
			return err
		}
		if !slices.Contains(next.ArticleIDs, a.ID) {
			next.ArticleIDs = append(next.ArticleIDs, a.ID)
			next.UpdatedAt = s.now()
			if err := s.repos.Volumes.Update(ctx, tx, next); err != nil {
				return err
			}
		}
	}

	if current != "" {
		prev, err := s.repos.Volumes.GetByID(ctx, tx, current)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// 原期刊已不存在
		case err != nil:
			return err
		default:
			prev.ArticleIDs = slices.DeleteFunc(prev.ArticleIDs, func(id string) bool { return id == a.ID })
			prev.UpdatedAt = s.now()
			if err := s.repos.Volumes.Update(ctx, tx, prev); err != nil {
				return err
			}
		}
	}

	if volumeID == "" {
		a.VolumeID = nil
	} else {
		a.VolumeID = &volumeID
	}
	return nil
}

// positionFor 未指定流程位置时按状态推导
func positionFor(status model.ArticleStatus, current model.EditorialPosition) model.EditorialPosition {
	switch status {
	case model.ArticlePublished:
		return model.PositionPublished
	case model.ArticleRejected:
		return model.PositionRejected
	case model.ArticleInReview:
		if current == model.PositionSubmitted {
			return model.PositionAwaitingReview
		}
	}
	return current
}

func (s *Service) applyArticleStatus(ctx context.Context, tx *txn.Tx, articleID string, c command.ChangeArticleStatus) (*model.Article, error) {
	a, err := s.repos.Articles.GetByID(ctx, tx, articleID)
	if err != nil {
		return nil, err
	}
	e, err := s.repos.Editorials.GetByArticleID(ctx, tx, articleID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.Status = c.Status
	if c.Status == model.ArticlePublished && a.PublishedAt == nil {
		a.PublishedAt = &now
	}
	a.EditedAt = now

	if c.Position != nil {
		e.Position = *c.Position
	} else {
		e.Position = positionFor(c.Status, e.Position)
	}
	e.UpdatedAt = now

	if err := s.repos.Articles.Update(ctx, tx, a); err != nil {
		return nil, err
	}
	if err := s.repos.Editorials.Update(ctx, tx, e); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) applyArticleContent(ctx context.Context, tx *txn.Tx, articleID string, c command.UpdateArticleContent) (*model.ContentHistory, error) {
	var media []model.Media
	if c.Media != nil {
		media = slices.Clone(*c.Media)
	} else {
		current, err := s.history.Current(ctx, tx, articleID)
		if err != nil {
			return nil, err
		}
		media = current.Media
	}
	return s.history.AppendVersion(ctx, tx, articleID, c.Content, media)
}

func (s *Service) applyEditorialTeam(ctx context.Context, tx *txn.Tx, editorialID string, c command.UpdateEditorialTeam) (*model.EditorialRecord, error) {
	e, err := s.repos.Editorials.GetByID(ctx, tx, editorialID)
	if err != nil {
		return nil, err
	}
	e.Team = c.Apply(e.Team)

	roles := e.Team.Roles()
	for _, role := range model.ContributionRoles() {
		for _, userID := range roles[role] {
			if _, err := s.upsertAuthor(ctx, tx, AuthorRef{UserID: userID}, e.ArticleID, role); err != nil {
				return nil, err
			}
		}
	}

	if c.AuthorIDs != nil {
		a, err := s.repos.Articles.GetByID(ctx, tx, e.ArticleID)
		if err != nil {
			return nil, err
		}
		authorIDs := make([]string, 0, len(e.Team.AuthorIDs))
		for _, userID := range e.Team.AuthorIDs {
			author, err := s.repos.Authors.GetByUserID(ctx, tx, userID)
			if err != nil {
				return nil, err
			}
			authorIDs = append(authorIDs, author.ID)
		}
		a.AuthorIDs = authorIDs
		if err := s.repos.Articles.Update(ctx, tx, a); err != nil {
			return nil, err
		}
	}

	e.UpdatedAt = s.now()
	if err := s.repos.Editorials.Update(ctx, tx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) applyCreateStaff(ctx context.Context, tx *txn.Tx, staffID string, c command.CreateStaff) (*model.Staff, error) {
	existing, err := s.repos.Staff.GetByUserID(ctx, tx, c.UserID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user %s is already staff", ErrInvalidOperation, c.UserID)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	staff := &model.Staff{
		ID:        staffID,
		UserID:    c.UserID,
		Name:      c.Name,
		AvatarURL: c.AvatarURL,
		Job:       c.Job,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repos.Staff.Add(ctx, tx, staff); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
		}
		return nil, err
	}
	return staff, nil
}

func (s *Service) applyUpdateStaff(ctx context.Context, tx *txn.Tx, staffID string, c command.UpdateStaff) (*model.Staff, error) {
	staff, err := s.repos.Staff.GetByID(ctx, tx, staffID)
	if err != nil {
		return nil, err
	}
	if c.Job != nil {
		staff.Job = *c.Job
	}
	if c.Active != nil {
		staff.Active = *c.Active
	}
	if c.Name != nil {
		staff.Name = *c.Name
	}
	if c.AvatarURL != nil {
		staff.AvatarURL = *c.AvatarURL
	}
	staff.UpdatedAt = s.now()
	if err := s.repos.Staff.Update(ctx, tx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) applyDeleteInteraction(ctx context.Context, tx *txn.Tx, interactionID string) (*model.Interaction, error) {
	i, err := s.repos.Interactions.GetByID(ctx, tx, interactionID)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Interactions.Delete(ctx, tx, interactionID); err != nil {
		return nil, err
	}

	if i.Kind == model.EditorialComment {
		e, err := s.repos.Editorials.GetByArticleID(ctx, tx, i.ArticleID)
		if err == nil {
			e.CommentIDs = slices.DeleteFunc(e.CommentIDs, func(id string) bool { return id == i.ID })
			if err := s.repos.Editorials.Update(ctx, tx, e); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	s.adjustCommentCount(ctx, tx, i.ArticleID, i.Kind, -1)
	return i, nil
}

func (s *Service) applyCreateVolume(ctx context.Context, tx *txn.Tx, volumeID string, c command.CreateVolume) (*model.Volume, error) {
	now := s.now()
	v := &model.Volume{
		ID:         volumeID,
		Edition:    c.Edition,
		Title:      c.Title,
		Summary:    c.Summary,
		Month:      c.Month,
		Year:       c.Year,
		Status:     model.VolumeInReview,
		Cover:      c.Cover,
		ArticleIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repos.Volumes.Add(ctx, tx, v); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, err)
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) applyUpdateVolume(ctx context.Context, tx *txn.Tx, volumeID string, c command.UpdateVolume) (*model.Volume, error) {
	v, err := s.repos.Volumes.GetByID(ctx, tx, volumeID)
	if err != nil {
		return nil, err
	}
	if c.Edition != nil {
		v.Edition = *c.Edition
	}
	if c.Title != nil {
		v.Title = *c.Title
	}
	if c.Summary != nil {
		v.Summary = *c.Summary
	}
	if c.Month != nil {
		v.Month = *c.Month
	}
	if c.Year != nil {
		v.Year = *c.Year
	}
	if c.Status != nil {
		v.Status = *c.Status
	}
	if c.Cover != nil {
		cover := *c.Cover
		v.Cover = &cover
	}
	v.UpdatedAt = s.now()
	if err := s.repos.Volumes.Update(ctx, tx, v); err != nil {
		return nil, err
	}
	return v, nil
}
