package service

import (
	"strings"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/util"
)

// PostForm 创建/编辑帖子的表单
type PostForm struct {
	Text    string `validate:"not_empty"`
	GroupID *int
	// Image 新上传图片的存储路径，为空表示保持原图
	Image      string
	ClearImage bool
}

// CommentForm 评论表单
type CommentForm struct {
	Text string `validate:"not_empty"`
}

// GroupForm 分组表单
type GroupForm struct {
	Title       string `json:"title" validate:"not_empty,max=200"`
	Slug        string `json:"slug" validate:"not_empty,max=100,slug"`
	Description string `json:"description" validate:"not_empty"`
}

// validateForm 去掉首尾空白后按 validate 标签校验
func validateForm(form interface{}, texts ...*string) error {
	for _, t := range texts {
		*t = strings.TrimSpace(*t)
	}
	if err := util.Validate.Struct(form); err != nil {
		return errors.Validation(util.ValidationFields(err))
	}
	return nil
}
