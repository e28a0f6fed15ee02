package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminal-terrace/editorial/internal/model"
)

func staffWith(job model.JobTier, active bool) *model.Staff {
	return &model.Staff{ID: "s", UserID: "staff-user", Job: job, Active: active}
}

var team = model.EditorialTeam{
	AuthorIDs:      []string{"author"},
	ReviewerIDs:    []string{"reviewer"},
	CorrectorIDs:   []string{"corrector"},
	EditorChiefIDs: []string{"chief"},
}

func TestCanRead(t *testing.T) {
	draft := &model.Article{Status: model.ArticleDraft}
	published := &model.Article{Status: model.ArticlePublished}

	tests := []struct {
		name     string
		article  *model.Article
		staff    *model.Staff
		callerID string
		want     bool
	}{
		{"published anonymous", published, nil, "", true},
		{"published stranger", published, nil, "stranger", true},
		{"draft stranger", draft, nil, "stranger", false},
		{"draft anonymous", draft, nil, "", false},
		{"draft active staff", draft, staffWith(model.JobBolsista, true), "staff-user", true},
		{"draft retired but active", draft, staffWith(model.JobAposentado, true), "staff-user", true},
		{"draft inactive staff", draft, staffWith(model.JobAdministrador, false), "staff-user", false},
		{"draft author", draft, nil, "author", true},
		{"draft reviewer", draft, nil, "reviewer", true},
		{"draft corrector", draft, nil, "corrector", true},
		{"draft chief", draft, nil, "chief", true},
		{"draft case differs", draft, nil, "Author", false},
		{"nil article", nil, staffWith(model.JobAdministrador, true), "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRead(tt.article, team, tt.staff, tt.callerID))
		})
	}
}

func TestCanEdit(t *testing.T) {
	draft := &model.Article{Status: model.ArticleInReview}
	published := &model.Article{Status: model.ArticlePublished}

	assert.True(t, CanEdit(draft, team, nil, "author"))
	assert.False(t, CanEdit(draft, team, nil, "stranger"))
	assert.False(t, CanEdit(published, team, nil, "author"), "已发布文章团队成员不能编辑")
	assert.True(t, CanEdit(published, team, staffWith(model.JobBolsista, true), "staff-user"))
	assert.False(t, CanEdit(published, team, staffWith(model.JobEditorChefe, false), "staff-user"))
}

func TestTierPredicates(t *testing.T) {
	type row struct {
		staff                                          *model.Staff
		status, pending, volume, resolve, createStaff bool
		direct                                         bool
	}
	tests := map[string]row{
		"nil":            {nil, false, false, false, false, false, false},
		"bolsista":       {staffWith(model.JobBolsista, true), true, true, false, false, false, false},
		"editor chefe":   {staffWith(model.JobEditorChefe, true), false, false, true, true, true, true},
		"administrador":  {staffWith(model.JobAdministrador, true), true, true, true, true, true, true},
		"aposentado":     {staffWith(model.JobAposentado, true), false, false, false, false, false, false},
		"inactive admin": {staffWith(model.JobAdministrador, false), false, false, false, false, false, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.status, CanModifyStatus(tt.staff), "CanModifyStatus")
			assert.Equal(t, tt.pending, CanCreatePending(tt.staff), "CanCreatePending")
			assert.Equal(t, tt.volume, CanEditVolume(tt.staff), "CanEditVolume")
			assert.Equal(t, tt.resolve, CanResolvePending(tt.staff), "CanResolvePending")
			assert.Equal(t, tt.createStaff, CanCreateStaff(tt.staff), "CanCreateStaff")
			assert.Equal(t, tt.direct, HasDirectRights(tt.staff), "HasDirectRights")
		})
	}
}

func TestCanAnnotate(t *testing.T) {
	assert.True(t, CanAnnotate(team, nil, "corrector"))
	assert.False(t, CanAnnotate(team, nil, "chief"))
	assert.True(t, CanAnnotate(team, staffWith(model.JobAposentado, true), "staff-user"))
	assert.False(t, CanAnnotate(team, nil, "stranger"))
}
