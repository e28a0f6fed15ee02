package workflow

import (
	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
)

func commandMetadata() command.UpdateArticleMetadata {
	return command.UpdateArticleMetadata{
		Title:         ptr("New title"),
		Summary:       ptr("new summary"),
		VolumeID:      ptr("V1"),
		AllowComments: ptr(false),
	}
}

func commandMetadataTitle(title string) command.UpdateArticleMetadata {
	return command.UpdateArticleMetadata{Title: ptr(title)}
}

func commandStatus(status string) command.ChangeArticleStatus {
	return command.ChangeArticleStatus{Status: model.ArticleStatus(status)}
}

func commandPublish() command.ChangeArticleStatus {
	return commandStatus(string(model.ArticlePublished))
}

func commandContent() command.UpdateArticleContent {
	return command.UpdateArticleContent{Content: "revised content"}
}

func commandTeam() command.UpdateEditorialTeam {
	return command.UpdateEditorialTeam{ReviewerIDs: &[]string{"u-reviewer"}}
}

func commandTeamAuthors(userIDs ...string) command.UpdateEditorialTeam {
	return command.UpdateEditorialTeam{AuthorIDs: &userIDs}
}

func commandCreateStaffFor(userID string) command.CreateStaff {
	return command.CreateStaff{UserID: userID, Name: "New Intern", Job: model.JobBolsista}
}

func commandCreateStaff() command.CreateStaff {
	return commandCreateStaffFor("u-new")
}

func commandUpdateStaff() command.UpdateStaff {
	return command.UpdateStaff{Job: ptr(model.JobEditorChefe), Name: ptr("Promoted")}
}

func commandCreateVolume() command.CreateVolume {
	return command.CreateVolume{Edition: 7, Title: "Autumn", Month: 10, Year: 2024}
}

func commandUpdateVolume() command.UpdateVolume {
	return command.UpdateVolume{Title: ptr("Renamed"), Status: ptr(model.VolumePublished)}
}

func commandMetadataVolume(volumeID string) command.UpdateArticleMetadata {
	return command.UpdateArticleMetadata{VolumeID: ptr(volumeID)}
}

func commandAllowComments(allow bool) command.UpdateArticleMetadata {
	return command.UpdateArticleMetadata{AllowComments: ptr(allow)}
}
