package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
)

// Now fixed clock used by fixtures
var Now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// CreateTestStaff creates an active staff member with a unique user id
func CreateTestStaff(repos store.Repositories, job model.JobTier, opts ...StaffOption) *model.Staff {
	uniqueID := uuid.New().String()
	s := &model.Staff{
		ID:        "staff-" + uniqueID,
		UserID:    "user-" + uniqueID,
		Name:      fmt.Sprintf("test_staff_%s", uniqueID[:8]),
		Job:       job,
		Active:    true,
		CreatedAt: Now,
		UpdatedAt: Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := repos.Staff.Add(context.Background(), nil, s); err != nil {
		panic(fmt.Sprintf("Failed to create test staff: %v", err))
	}
	return s
}

// StaffOption configures test staff
type StaffOption func(*model.Staff)

// WithUserID sets the external user id
func WithUserID(userID string) StaffOption {
	return func(s *model.Staff) {
		s.UserID = userID
	}
}

// Inactive marks the staff member as inactive
func Inactive() StaffOption {
	return func(s *model.Staff) {
		s.Active = false
	}
}

// TestArticle groups the records created for one article
type TestArticle struct {
	Article   *model.Article
	Editorial *model.EditorialRecord
	History   *model.ContentHistory
}

// CreateTestArticle creates an article with its editorial record and an
// Original content version
func CreateTestArticle(repos store.Repositories, opts ...ArticleOption) *TestArticle {
	ctx := context.Background()
	uniqueID := uuid.New().String()

	a := &model.Article{
		ID:            "article-" + uniqueID,
		Title:         fmt.Sprintf("Test Article %s", uniqueID[:8]),
		Summary:       "summary",
		Status:        model.ArticleDraft,
		Type:          model.TypeArticle,
		EditorialID:   "editorial-" + uniqueID,
		AllowComments: true,
		CreatedAt:     Now,
		EditedAt:      Now,
	}
	e := &model.EditorialRecord{
		ID:        a.EditorialID,
		ArticleID: a.ID,
		Position:  model.PositionSubmitted,
		UpdatedAt: Now,
	}
	h := &model.ContentHistory{
		ID:        "history-" + uniqueID,
		ArticleID: a.ID,
		Ordinal:   model.Original,
		Content:   "original content",
		CreatedAt: Now,
	}
	e.CurrentHistoryID = h.ID
	e.HistoryIDs = []string{h.ID}

	ta := &TestArticle{Article: a, Editorial: e, History: h}
	for _, opt := range opts {
		opt(ta)
	}

	if err := repos.Articles.Add(ctx, nil, a); err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}
	if err := repos.Editorials.Add(ctx, nil, e); err != nil {
		panic(fmt.Sprintf("Failed to create test editorial: %v", err))
	}
	if err := repos.Histories.Add(ctx, nil, h); err != nil {
		panic(fmt.Sprintf("Failed to create test history: %v", err))
	}
	return ta
}

// ArticleOption configures test article
type ArticleOption func(*TestArticle)

// WithStatus sets the article status
func WithStatus(status model.ArticleStatus) ArticleOption {
	return func(ta *TestArticle) {
		ta.Article.Status = status
	}
}

// WithTeam sets the editorial team
func WithTeam(team model.EditorialTeam) ArticleOption {
	return func(ta *TestArticle) {
		ta.Editorial.Team = team
	}
}

// WithAllowComments toggles comments
func WithAllowComments(allow bool) ArticleOption {
	return func(ta *TestArticle) {
		ta.Article.AllowComments = allow
	}
}

// CreateTestVolume creates a volume in review
func CreateTestVolume(repos store.Repositories, edition int) *model.Volume {
	v := &model.Volume{
		ID:        "volume-" + uuid.New().String(),
		Edition:   edition,
		Title:     fmt.Sprintf("Volume %d", edition),
		Month:     1,
		Year:      2024,
		Status:    model.VolumeInReview,
		CreatedAt: Now,
		UpdatedAt: Now,
	}
	if err := repos.Volumes.Add(context.Background(), nil, v); err != nil {
		panic(fmt.Sprintf("Failed to create test volume: %v", err))
	}
	return v
}
