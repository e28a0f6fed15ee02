package history

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"terminal-terrace/editorial/internal/model"
)

var ErrDifferentArticles = errors.New("versions belong to different articles")

// Segment 差异片段
type Segment struct {
	Op   string `json:"op"` // equal, insert, delete
	Text string `json:"text"`
}

// Diff 两个版本之间的差异
type Diff struct {
	ArticleID   string               `json:"article_id"`
	FromID      string               `json:"from_id"`
	ToID        string               `json:"to_id"`
	FromOrdinal model.VersionOrdinal `json:"from_ordinal"`
	ToOrdinal   model.VersionOrdinal `json:"to_ordinal"`
	Insertions  int                  `json:"insertions"`
	Deletions   int                  `json:"deletions"`
	Segments    []Segment            `json:"segments"`
	// Patch unidiff 风格的补丁文本
	Patch string `json:"patch"`
}

// DiffVersions 比较同一文章的两个版本
func (e *Engine) DiffVersions(ctx context.Context, fromID, toID string) (*Diff, error) {
	from, err := e.histories.GetByID(ctx, nil, fromID)
	if err != nil {
		return nil, err
	}
	to, err := e.histories.GetByID(ctx, nil, toID)
	if err != nil {
		return nil, err
	}
	if from.ArticleID != to.ArticleID {
		return nil, ErrDifferentArticles
	}
	return Compare(from, to), nil
}

// Compare 计算内容差异
func Compare(from, to *model.ContentHistory) *Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from.Content, to.Content, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	d := &Diff{
		ArticleID:   from.ArticleID,
		FromID:      from.ID,
		ToID:        to.ID,
		FromOrdinal: from.Ordinal,
		ToOrdinal:   to.Ordinal,
		Segments:    make([]Segment, 0, len(diffs)),
		Patch:       dmp.PatchToText(dmp.PatchMake(from.Content, diffs)),
	}
	for _, diff := range diffs {
		n := utf8.RuneCountInString(diff.Text)
		var op string
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			op = "insert"
			d.Insertions += n
		case diffmatchpatch.DiffDelete:
			op = "delete"
			d.Deletions += n
		default:
			op = "equal"
		}
		d.Segments = append(d.Segments, Segment{Op: op, Text: diff.Text})
	}
	return d
}
