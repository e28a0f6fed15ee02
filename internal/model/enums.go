package model

import (
	"fmt"
	"strings"
)

// JobTier 员工职级，与 Active 一起构成唯一的授权依据
type JobTier string

const (
	JobBolsista      JobTier = "Bolsista"
	JobEditorChefe   JobTier = "EditorChefe"
	JobAdministrador JobTier = "Administrador"
	JobAposentado    JobTier = "Aposentado"
)

func (j JobTier) Valid() bool {
	switch j {
	case JobBolsista, JobEditorChefe, JobAdministrador, JobAposentado:
		return true
	}
	return false
}

// ArticleStatus 文章状态，Published 是唯一的公开可见条件
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "Draft"
	ArticleInReview  ArticleStatus = "InReview"
	ArticlePublished ArticleStatus = "Published"
	ArticleArchived  ArticleStatus = "Archived"
	ArticleRejected  ArticleStatus = "Rejected"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case ArticleDraft, ArticleInReview, ArticlePublished, ArticleArchived, ArticleRejected:
		return true
	}
	return false
}

// ArticleType 文章类型
type ArticleType string

const (
	TypeArticle   ArticleType = "Article"
	TypeBlog      ArticleType = "Blog"
	TypeOpinion   ArticleType = "Opinion"
	TypeInterview ArticleType = "Interview"
	TypeEssay     ArticleType = "Essay"
)

func (t ArticleType) Valid() bool {
	switch t {
	case TypeArticle, TypeBlog, TypeOpinion, TypeInterview, TypeEssay:
		return true
	}
	return false
}

// EditorialPosition 编辑流程中的位置
type EditorialPosition string

const (
	PositionSubmitted          EditorialPosition = "Submitted"
	PositionAwaitingReview     EditorialPosition = "AwaitingReview"
	PositionUnderReview        EditorialPosition = "UnderReview"
	PositionAwaitingCorrection EditorialPosition = "AwaitingCorrection"
	PositionUnderCorrection    EditorialPosition = "UnderCorrection"
	PositionReadyToPublish     EditorialPosition = "ReadyToPublish"
	PositionPublished          EditorialPosition = "Published"
	PositionRejected           EditorialPosition = "Rejected"
)

func (p EditorialPosition) Valid() bool {
	switch p {
	case PositionSubmitted, PositionAwaitingReview, PositionUnderReview,
		PositionAwaitingCorrection, PositionUnderCorrection,
		PositionReadyToPublish, PositionPublished, PositionRejected:
		return true
	}
	return false
}

// PendingStatus 待审批请求状态
type PendingStatus string

const (
	PendingAwaitingReview PendingStatus = "AwaitingReview"
	PendingApproved       PendingStatus = "Approved"
	PendingRejected       PendingStatus = "Rejected"
	PendingArchived       PendingStatus = "Archived"
)

func (s PendingStatus) Valid() bool {
	switch s {
	case PendingAwaitingReview, PendingApproved, PendingRejected, PendingArchived:
		return true
	}
	return false
}

// TargetType 待审批请求的目标实体类型
type TargetType string

const (
	TargetArticle     TargetType = "Article"
	TargetStaff       TargetType = "Staff"
	TargetVolume      TargetType = "Volume"
	TargetInteraction TargetType = "Interaction"
	TargetEditorial   TargetType = "Editorial"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetArticle, TargetStaff, TargetVolume, TargetInteraction, TargetEditorial:
		return true
	}
	return false
}

// InteractionKind 评论类型
type InteractionKind string

const (
	PublicComment    InteractionKind = "PublicComment"
	EditorialComment InteractionKind = "EditorialComment"
)

func (k InteractionKind) Valid() bool {
	return k == PublicComment || k == EditorialComment
}

// VolumeStatus 期刊状态
type VolumeStatus string

const (
	VolumeInReview  VolumeStatus = "InReview"
	VolumePublished VolumeStatus = "Published"
)

func (s VolumeStatus) Valid() bool {
	return s == VolumeInReview || s == VolumePublished
}

// ContributionRole 作者在某篇文章中的角色
type ContributionRole string

const (
	RoleAuthor      ContributionRole = "Author"
	RoleReviewer    ContributionRole = "Reviewer"
	RoleCorrector   ContributionRole = "Corrector"
	RoleEditorChief ContributionRole = "EditorChief"
)

// ContributionRoles 固定顺序的全部角色
func ContributionRoles() []ContributionRole {
	return []ContributionRole{RoleAuthor, RoleReviewer, RoleCorrector, RoleEditorChief}
}

// VersionOrdinal 内容版本序号，Final 为上限
type VersionOrdinal int

const (
	Original VersionOrdinal = iota
	PrimeiraEdicao
	SegundaEdicao
	TerceiraEdicao
	QuartaEdicao
	QuintaEdicao
	Final
)

var ordinalNames = []string{
	"Original",
	"PrimeiraEdicao",
	"SegundaEdicao",
	"TerceiraEdicao",
	"QuartaEdicao",
	"QuintaEdicao",
	"Final",
}

// NextOrdinal 已有 n 个版本时新版本的序号，超过 Final 时固定为 Final
func NextOrdinal(n int) VersionOrdinal {
	if n < 0 {
		n = 0
	}
	if n >= int(Final) {
		return Final
	}
	return VersionOrdinal(n)
}

func (o VersionOrdinal) String() string {
	if o < Original || o > Final {
		return fmt.Sprintf("VersionOrdinal(%d)", int(o))
	}
	return ordinalNames[o]
}

// MarshalText 以名称序列化
func (o VersionOrdinal) MarshalText() ([]byte, error) {
	if o < Original || o > Final {
		return nil, fmt.Errorf("invalid version ordinal %d", int(o))
	}
	return []byte(ordinalNames[o]), nil
}

func (o *VersionOrdinal) UnmarshalText(text []byte) error {
	name := strings.TrimSpace(string(text))
	for i, n := range ordinalNames {
		if n == name {
			*o = VersionOrdinal(i)
			return nil
		}
	}
	return fmt.Errorf("unknown version ordinal %q", name)
}
