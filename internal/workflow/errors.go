package workflow

import (
	"errors"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/permission"
	"terminal-terrace/editorial/internal/store"
)

var (
	// ErrNotFound 引用的实体不存在
	ErrNotFound = store.ErrNotFound
	// ErrUnauthorized 调用方没有执行该操作的权限，不会被降级为待审批请求
	ErrUnauthorized = permission.ErrUnauthorized
	// ErrInvalidOperation 状态不允许该操作
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidInput 参数不合法
	ErrInvalidInput = command.ErrInvalidCommand
	// ErrUnknownCommand 待审批请求中的命令标签无法识别
	ErrUnknownCommand = command.ErrUnknownCommand
	// ErrResolutionFailed 审批通过后重放命令失败，事务已回滚，请求仍待处理
	ErrResolutionFailed = errors.New("pending resolution failed")
)
