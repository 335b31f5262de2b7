package service

import (
	"context"
	"time"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
)

type CommentService struct {
	comments interfaces.CommentRepository
	posts    interfaces.PostRepository
	now      func() time.Time
}

func NewCommentService(comments interfaces.CommentRepository, posts interfaces.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts, now: time.Now}
}

// AddComment 为帖子添加评论
func (s *CommentService) AddComment(ctx context.Context, authorID, postID int, form *CommentForm) (*model.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	if err := validateForm(form, &form.Text); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   &post.ID,
		AuthorID: authorID,
		Text:     form.Text,
		Created:  s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}
	return comment, nil
}
