package service

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound       = errors.New("笔记不存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrForbidden          = errors.New("没有权限")
	ErrEmailTaken         = errors.New("邮箱已注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrNotConfirmed       = errors.New("邮箱尚未确认")
	ErrInvalidToken       = errors.New("令牌无效或已过期")
	ErrInvalidNote        = errors.New("笔记参数无效")
	ErrInvalidFileRef     = fmt.Errorf("%w: 文件引用无效", ErrInvalidNote)
	ErrInvalidPath        = errors.New("非法的对象路径")
	ErrFileTooLarge       = errors.New("文件超过大小限制")
	ErrNotPDF             = errors.New("只支持 PDF 文件")
	ErrObjectNotFound     = errors.New("文件不存在")
)
