package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/editorial/internal/model"
)

var ErrUnknownCommand = errors.New("unknown command type")

// Encode 序列化命令参数，枚举以名称保存
func Encode(cmd Command) (string, error) {
	if cmd == nil {
		return "", fmt.Errorf("%w: nil command", ErrInvalidCommand)
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", cmd.Type(), err)
	}
	return string(data), nil
}

// Decode 按类型标签反序列化并校验，未知字段忽略，缺失字段视为不修改
func Decode(tag string, payload string) (Command, error) {
	if strings.TrimSpace(payload) == "" {
		payload = "{}"
	}

	var cmd Command
	var err error
	switch Type(tag) {
	case TypeUpdateArticleMetadata:
		cmd, err = decodeAs[UpdateArticleMetadata](payload)
	case TypeChangeArticleStatus:
		cmd, err = decodeAs[ChangeArticleStatus](payload)
	case TypeUpdateArticleContent:
		cmd, err = decodeAs[UpdateArticleContent](payload)
	case TypeUpdateEditorialTeam:
		cmd, err = decodeAs[UpdateEditorialTeam](payload)
	case TypeCreateStaff:
		cmd, err = decodeAs[CreateStaff](payload)
	case TypeUpdateStaff:
		cmd, err = decodeAs[UpdateStaff](payload)
	case TypeDeleteInteraction:
		cmd, err = decodeAs[DeleteInteraction](payload)
	case TypeCreateVolume:
		cmd, err = decodeAs[CreateVolume](payload)
	case TypeUpdateVolume:
		cmd, err = decodeAs[UpdateVolume](payload)
	case TypeUpdateStaffJob:
		cmd, err = decodeLegacyStaffJob(payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tag)
	}
	if err != nil {
		return nil, err
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func decodeAs[T Command](payload string) (Command, error) {
	var cmd T
	if err := json.Unmarshal([]byte(payload), &cmd); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidCommand, cmd.Type(), err)
	}
	return cmd, nil
}

func decodeLegacyStaffJob(payload string) (Command, error) {
	var legacy struct {
		Job model.JobTier `json:"job"`
	}
	if err := json.Unmarshal([]byte(payload), &legacy); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidCommand, TypeUpdateStaffJob, err)
	}
	if legacy.Job == "" {
		return nil, invalid("legacy %s payload without job", TypeUpdateStaffJob)
	}
	return UpdateStaff{Job: &legacy.Job}, nil
}

// Types 全部可识别的标签
func Types() []Type {
	return []Type{
		TypeUpdateArticleMetadata,
		TypeChangeArticleStatus,
		TypeUpdateArticleContent,
		TypeUpdateEditorialTeam,
		TypeCreateStaff,
		TypeUpdateStaff,
		TypeDeleteInteraction,
		TypeCreateVolume,
		TypeUpdateVolume,
		TypeUpdateStaffJob,
	}
}
