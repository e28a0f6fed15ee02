// Package permission 编辑部权限判断
// 全部为纯函数，只返回布尔值，由调用方决定是否报错
package permission

import (
	"errors"

	"terminal-terrace/editorial/internal/model"
)

var ErrUnauthorized = errors.New("无权限执行此操作")

// AccessSource 访问权限来源
type AccessSource string

const (
	SourcePublic AccessSource = "public" // 已发布文章
	SourceStaff  AccessSource = "staff"  // 在职员工
	SourceTeam   AccessSource = "team"   // 编辑团队成员
	SourceNone   AccessSource = "none"
)

// IsStaff 员工存在且在职
func IsStaff(staff *model.Staff) bool {
	return staff != nil && staff.Active
}

// hasJob 在职且职级在给定集合中
func hasJob(staff *model.Staff, jobs ...model.JobTier) bool {
	if !IsStaff(staff) {
		return false
	}
	for _, j := range jobs {
		if staff.Job == j {
			return true
		}
	}
	return false
}

// IsBolsista 需要走审批流程的职级
func IsBolsista(staff *model.Staff) bool {
	return hasJob(staff, model.JobBolsista)
}

// HasDirectRights 可以直接执行受控操作的职级
func HasDirectRights(staff *model.Staff) bool {
	return hasJob(staff, model.JobEditorChefe, model.JobAdministrador)
}

// ReadAccess 读取文章的权限来源
// 已发布文章对所有人可见；未发布文章仅员工与团队成员可见，id 精确匹配
func ReadAccess(article *model.Article, team model.EditorialTeam, staff *model.Staff, callerID string) AccessSource {
	if article == nil {
		return SourceNone
	}
	if article.Status == model.ArticlePublished {
		return SourcePublic
	}
	if IsStaff(staff) {
		return SourceStaff
	}
	if team.Contains(callerID) {
		return SourceTeam
	}
	return SourceNone
}

// CanRead 是否可以读取文章
func CanRead(article *model.Article, team model.EditorialTeam, staff *model.Staff, callerID string) bool {
	return ReadAccess(article, team, staff, callerID) != SourceNone
}

// CanEdit 已发布文章仅员工可编辑，其余情况同 CanRead
func CanEdit(article *model.Article, team model.EditorialTeam, staff *model.Staff, callerID string) bool {
	if article == nil {
		return false
	}
	if article.Status == model.ArticlePublished {
		return IsStaff(staff)
	}
	return CanRead(article, team, staff, callerID)
}

// CanModifyStatus 修改文章状态：Bolsista 与 Administrador
func CanModifyStatus(staff *model.Staff) bool {
	return hasJob(staff, model.JobBolsista, model.JobAdministrador)
}

// CanCreatePending 创建待审批请求：Bolsista 与 Administrador
func CanCreatePending(staff *model.Staff) bool {
	return hasJob(staff, model.JobBolsista, model.JobAdministrador)
}

// CanEditVolume 编辑期刊：EditorChefe 与 Administrador
func CanEditVolume(staff *model.Staff) bool {
	return hasJob(staff, model.JobEditorChefe, model.JobAdministrador)
}

// CanResolvePending 处理待审批请求：EditorChefe 与 Administrador
func CanResolvePending(staff *model.Staff) bool {
	return hasJob(staff, model.JobEditorChefe, model.JobAdministrador)
}

// CanCreateStaff 创建员工：EditorChefe 与 Administrador
func CanCreateStaff(staff *model.Staff) bool {
	return hasJob(staff, model.JobEditorChefe, model.JobAdministrador)
}

// CanEditTeam 修改编辑团队：EditorChefe 与 Administrador
func CanEditTeam(staff *model.Staff) bool {
	return HasDirectRights(staff)
}

// CanAnnotate 版本批注：在职员工，或作者、审稿、校对成员
func CanAnnotate(team model.EditorialTeam, staff *model.Staff, callerID string) bool {
	return IsStaff(staff) || team.ContainsWorker(callerID)
}

// CanModerateComments 可以删除任何人的批注
func CanModerateComments(staff *model.Staff) bool {
	return HasDirectRights(staff)
}
