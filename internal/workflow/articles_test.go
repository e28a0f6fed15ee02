package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
)

func TestCreateArticle(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	a, err := e.svc.CreateArticle(ctx, "U1", CreateArticleInput{
		Title:         "On Editing",
		Type:          model.TypeEssay,
		Authors:       []AuthorRef{{UserID: "U1", Name: "Ana"}, {UserID: "U2"}},
		AllowComments: true,
		Content:       "first draft",
		VolumeID:      ptr("V2"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ArticleDraft, a.Status)
	require.Len(t, a.AuthorIDs, 2)

	u1, err := e.repos.Authors.GetByUserID(ctx, nil, "U1")
	require.NoError(t, err)
	assert.Equal(t, u1.ID, a.AuthorIDs[0])
	assert.Equal(t, "Ana", u1.Name)
	assert.Equal(t, []model.Contribution{{ArticleID: a.ID, Role: model.RoleAuthor}}, u1.Contributions)

	ed, err := e.repos.Editorials.GetByArticleID(ctx, nil, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.EditorialID, ed.ID)
	assert.Equal(t, []string{"U1", "U2"}, ed.Team.AuthorIDs)
	assert.Equal(t, model.PositionSubmitted, ed.Position)

	versions, err := e.repos.Histories.ListByArticle(ctx, nil, a.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, model.Original, versions[0].Ordinal)
	assert.Equal(t, ed.CurrentHistoryID, versions[0].ID)

	v, err := e.repos.Volumes.GetByID(ctx, nil, "V2")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, v.ArticleIDs)
}

func TestCreateArticlePrependsCaller(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	a, err := e.svc.CreateArticle(ctx, "U1", CreateArticleInput{
		Title:   "Guest post",
		Type:    model.TypeBlog,
		Authors: []AuthorRef{{UserID: "U2"}, {UserID: "U2"}},
		Content: "body",
	})
	require.NoError(t, err)

	ed, err := e.repos.Editorials.GetByArticleID(ctx, nil, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"U1", "U2"}, ed.Team.AuthorIDs)
	assert.Len(t, a.AuthorIDs, 2)
}

func TestCreateArticleIsAtomic(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	_, err := e.svc.CreateArticle(ctx, "U1", CreateArticleInput{
		Title:    "Lost",
		Type:     model.TypeArticle,
		Content:  "body",
		VolumeID: ptr("missing-volume"),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.repos.Authors.GetByUserID(ctx, nil, "U1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	items, total, err := e.repos.Articles.List(ctx, nil, store.ArticleFilter{}, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}

func TestCreateArticleValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.svc.CreateArticle(ctx, "", CreateArticleInput{Title: "t", Type: model.TypeBlog, Content: "c"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.svc.CreateArticle(ctx, "U1", CreateArticleInput{Title: "t", Type: "Poem", Content: "c"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.svc.CreateArticle(ctx, "U1", CreateArticleInput{Title: "t", Type: model.TypeBlog})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertAuthorIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	first, err := e.svc.UpsertAuthor(ctx, "U9", "Bea", "")
	require.NoError(t, err)
	second, err := e.svc.UpsertAuthor(ctx, "U9", "Beatriz", "https://cdn/bea.png")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Beatriz", second.Name)
	assert.Equal(t, "https://cdn/bea.png", second.AvatarURL)

	_, err = e.svc.UpsertAuthor(ctx, "", "x", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateTeamRecordsContributions(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	r, err := e.svc.UpdateEditorialTeam(ctx, chiefUser, "A1", commandTeamAuthors(authorUser, "U2", authorUser), "")
	require.NoError(t, err)
	assert.Equal(t, []string{authorUser, "U2"}, r.Value.Team.AuthorIDs)

	u2, err := e.repos.Authors.GetByUserID(ctx, nil, "U2")
	require.NoError(t, err)
	assert.Equal(t, []string{"author-1", u2.ID}, e.article(t, "A1").AuthorIDs)
	assert.Equal(t, []string{"A1"}, u2.ArticleIDs)
}

func TestMetadataMovesArticleBetweenVolumes(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	_, err := e.svc.UpdateArticleMetadata(ctx, adminUser, "A1", commandMetadata(), "")
	require.NoError(t, err)
	_, err = e.svc.UpdateArticleMetadata(ctx, adminUser, "A1", commandMetadataVolume("V2"), "")
	require.NoError(t, err)

	v1 := must(e.repos.Volumes.GetByID(ctx, nil, "V1"))
	v2 := must(e.repos.Volumes.GetByID(ctx, nil, "V2"))
	assert.Empty(t, v1.ArticleIDs)
	assert.Equal(t, []string{"A1"}, v2.ArticleIDs)
	require.NotNil(t, e.article(t, "A1").VolumeID)
	assert.Equal(t, "V2", *e.article(t, "A1").VolumeID)

	_, err = e.svc.UpdateArticleMetadata(ctx, adminUser, "A1", commandMetadataVolume(""), "")
	require.NoError(t, err)
	assert.Nil(t, e.article(t, "A1").VolumeID)
	assert.Empty(t, must(e.repos.Volumes.GetByID(ctx, nil, "V2")).ArticleIDs)
}

func TestChangeStatusDerivesPosition(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	_, err := e.svc.ChangeArticleStatus(ctx, adminUser, "A1", commandStatus(string(model.ArticleInReview)), "")
	require.NoError(t, err)
	assert.Equal(t, model.PositionAwaitingReview, must(e.repos.Editorials.GetByID(ctx, nil, "E1")).Position)
	assert.Nil(t, e.article(t, "A1").PublishedAt)

	cmd := commandStatus(string(model.ArticleInReview))
	cmd.Position = ptr(model.PositionUnderCorrection)
	_, err = e.svc.ChangeArticleStatus(ctx, chiefUser, "A1", cmd, "")
	require.NoError(t, err)
	assert.Equal(t, model.PositionUnderCorrection, must(e.repos.Editorials.GetByID(ctx, nil, "E1")).Position)

	r, err := e.svc.ChangeArticleStatus(ctx, adminUser, "A1", commandPublish(), "")
	require.NoError(t, err)
	require.NotNil(t, r.Value.PublishedAt)
	assert.Equal(t, model.PositionPublished, must(e.repos.Editorials.GetByID(ctx, nil, "E1")).Position)
}

func TestGetArticleVisibility(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	_, err := e.svc.GetArticle(ctx, readerUser, "A1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.svc.GetArticle(ctx, "", "A1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	d, err := e.svc.GetArticle(ctx, authorUser, "A1")
	require.NoError(t, err)
	assert.Equal(t, permission.SourceTeam, d.Access)
	assert.Equal(t, "original content", d.Content.Content)

	d, err = e.svc.GetArticle(ctx, bolsistaUser, "A1")
	require.NoError(t, err)
	assert.Equal(t, permission.SourceStaff, d.Access)

	_, err = e.svc.AddStaffComment(ctx, bolsistaUser, "H1", "check the intro", nil)
	require.NoError(t, err)
	_, err = e.svc.ChangeArticleStatus(ctx, adminUser, "A1", commandPublish(), "")
	require.NoError(t, err)

	d, err = e.svc.GetArticle(ctx, readerUser, "A1")
	require.NoError(t, err)
	assert.Equal(t, permission.SourcePublic, d.Access)
	assert.Empty(t, d.Content.StaffComments)

	d, err = e.svc.GetArticle(ctx, bolsistaUser, "A1")
	require.NoError(t, err)
	assert.Len(t, d.Content.StaffComments, 1)
}

func TestListArticlesHidesUnpublished(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)
	_, err := e.svc.CreateArticle(ctx, "U1", CreateArticleInput{Title: "Second", Type: model.TypeBlog, Content: "c"})
	require.NoError(t, err)
	_, err = e.svc.ChangeArticleStatus(ctx, adminUser, "A1", commandPublish(), "")
	require.NoError(t, err)

	public, err := e.svc.ListArticles(ctx, readerUser, store.ArticleFilter{Statuses: []model.ArticleStatus{model.ArticleDraft}}, store.Page{})
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, "A1", public.Items[0].ID)
	assert.EqualValues(t, 1, public.Total)

	all, err := e.svc.ListArticles(ctx, bolsistaUser, store.ArticleFilter{}, store.Page{PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Len(t, all.Items, 1)
	assert.Equal(t, 1, all.PageSize)
}

func TestVersionsAndDiff(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	r, err := e.svc.UpdateArticleContent(ctx, adminUser, "A1", commandContent(), "")
	require.NoError(t, err)

	versions, err := e.svc.ListVersions(ctx, authorUser, "A1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, r.Value.ID, versions[1].ID)

	_, err = e.svc.ListVersions(ctx, readerUser, "A1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.svc.GetVersion(ctx, readerUser, "H1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	d, err := e.svc.DiffVersions(ctx, bolsistaUser, "H1", r.Value.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1", d.ArticleID)
	assert.Positive(t, d.Insertions)

	rec, err := e.svc.GetEditorialRecord(ctx, authorUser, "A1")
	require.NoError(t, err)
	assert.Equal(t, r.Value.ID, rec.CurrentHistoryID)
	_, err = e.svc.GetEditorialRecord(ctx, readerUser, "A1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaffAnnotations(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	c, err := e.svc.AddStaffComment(ctx, authorUser, "H1", "<b>fix</b> this<script>x()</script>", nil)
	require.NoError(t, err)
	assert.Equal(t, "<b>fix</b> this", c.Text)

	reply, err := e.svc.AddStaffComment(ctx, bolsistaUser, "H1", "done", &c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, *reply.ParentID)

	_, err = e.svc.AddStaffComment(ctx, readerUser, "H1", "hi", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.svc.AddStaffComment(ctx, authorUser, "H1", "<script></script>", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.svc.UpdateStaffComment(ctx, bolsistaUser, "H1", c.ID, "mine now")
	assert.ErrorIs(t, err, ErrUnauthorized)
	updated, err := e.svc.UpdateStaffComment(ctx, authorUser, "H1", c.ID, "fix this please")
	require.NoError(t, err)
	assert.NotNil(t, updated.EditedAt)

	assert.ErrorIs(t, e.svc.DeleteStaffComment(ctx, bolsistaUser, "H1", c.ID), ErrUnauthorized)
	require.NoError(t, e.svc.DeleteStaffComment(ctx, chiefUser, "H1", c.ID))

	h := must(e.repos.Histories.GetByID(ctx, nil, "H1"))
	require.Len(t, h.StaffComments, 1)
	assert.Equal(t, reply.ID, h.StaffComments[0].ID)
}

func TestCreatePendingRequest(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	p, err := e.svc.CreatePendingRequest(ctx, bolsistaUser, PendingInput{
		TargetID:      "A1",
		TargetType:    model.TargetArticle,
		CommandType:   "ChangeArtigoStatus",
		CommandParams: `{"status":"InReview"}`,
		Commentary:    "  ready  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ready", p.Commentary)
	assert.Equal(t, model.ArticleDraft, e.article(t, "A1").Status)

	_, err = e.svc.ResolvePendingRequest(ctx, p.ID, adminUser, true)
	require.NoError(t, err)
	assert.Equal(t, model.ArticleInReview, e.article(t, "A1").Status)

	legacy, err := e.svc.CreatePendingRequest(ctx, adminUser, PendingInput{
		TargetID:      "S1",
		CommandType:   "UpdateStaffJob",
		CommandParams: `{"job":"EditorChefe"}`,
	})
	require.NoError(t, err)
	_, err = e.svc.ResolvePendingRequest(ctx, legacy.ID, chiefUser, true)
	require.NoError(t, err)
	assert.Equal(t, model.JobEditorChefe, must(e.repos.Staff.GetByID(ctx, nil, "S1")).Job)

	created, err := e.svc.CreatePendingRequest(ctx, bolsistaUser, PendingInput{
		CommandType:   "CreateVolume",
		CommandParams: `{"edition":3,"title":"Spring","month":3,"year":2025}`,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.TargetID)
	_, err = e.svc.ResolvePendingRequest(ctx, created.ID, adminUser, true)
	require.NoError(t, err)
	v, err := e.repos.Volumes.GetByID(ctx, nil, created.TargetID)
	require.NoError(t, err)
	assert.Equal(t, "Spring", v.Title)
}

func TestCreatePendingRequestValidation(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	tests := []struct {
		name   string
		caller string
		in     PendingInput
		err    error
	}{
		{"non staff", readerUser, PendingInput{TargetID: "A1", CommandType: "ChangeArtigoStatus", CommandParams: `{"status":"InReview"}`}, ErrUnauthorized},
		{"editor chief", chiefUser, PendingInput{TargetID: "A1", CommandType: "ChangeArtigoStatus", CommandParams: `{"status":"InReview"}`}, ErrUnauthorized},
		{"unknown tag", bolsistaUser, PendingInput{TargetID: "A1", CommandType: "Publish"}, ErrUnknownCommand},
		{"bad payload", bolsistaUser, PendingInput{TargetID: "A1", CommandType: "ChangeArtigoStatus", CommandParams: `{"status":"Gone"}`}, ErrInvalidInput},
		{"wrong target type", bolsistaUser, PendingInput{TargetID: "A1", TargetType: model.TargetVolume, CommandType: "ChangeArtigoStatus", CommandParams: `{"status":"InReview"}`}, ErrInvalidOperation},
		{"missing target", bolsistaUser, PendingInput{TargetID: "nope", CommandType: "UpdateVolume", CommandParams: `{"title":"x"}`}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.CreatePendingRequest(ctx, tt.caller, tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Empty(t, e.openPending(t))
}

func TestPendingReads(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)
	r, err := e.svc.ChangeArticleStatus(ctx, bolsistaUser, "A1", commandPublish(), "")
	require.NoError(t, err)

	page, err := e.svc.ListPendingRequests(ctx, bolsistaUser, store.PendingFilter{TargetID: "A1"}, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	got, err := e.svc.GetPendingRequest(ctx, chiefUser, r.Pending.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Pending.ID, got.ID)

	_, err = e.svc.ListPendingRequests(ctx, readerUser, store.PendingFilter{}, store.Page{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.svc.GetPendingRequest(ctx, authorUser, r.Pending.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStaffAndVolumeReads(t *testing.T) {
	ctx := context.Background()
	e := newSeededEnv(t)

	s, err := e.svc.GetStaff(ctx, "u-target")
	require.NoError(t, err)
	assert.Equal(t, "S1", s.ID)
	_, err = e.svc.GetStaff(ctx, readerUser)
	assert.ErrorIs(t, err, ErrNotFound)

	staff, err := e.svc.ListStaff(ctx, bolsistaUser, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, staff.Total)

	for _, caller := range []string{readerUser, ""} {
		_, err = e.svc.ListStaff(ctx, caller, store.Page{})
		assert.ErrorIs(t, err, ErrUnauthorized, "caller %q", caller)
	}

	volumes, err := e.svc.ListVolumes(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, volumes.Items, 2)
	assert.Equal(t, "V2", volumes.Items[0].ID)

	_, err = e.svc.GetVolume(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
