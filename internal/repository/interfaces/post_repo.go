package interfaces

import (
	"context"
	"yatube-backend/internal/model"
)

// PostFilter 帖子查询条件，nil 字段表示不过滤
type PostFilter struct {
	GroupID  *int
	AuthorID *int
	// FollowerID 只保留该用户关注的作者的帖子
	FollowerID *int
}

// PostRepository 帖子相关的数据库操作
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int) (*model.Post, error)
	// Update 只更新 text、group_id、image，pub_date 和 author_id 不变
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int) error
	// List 按 pub_date 倒序返回帖子，作者信息一并加载
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
}

// CommentRepository 评论相关的数据库操作
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID int) ([]*model.Comment, error)
}

// FollowRepository 关注关系
type FollowRepository interface {
	// GetOrCreate 不存在时插入，返回是否新建
	GetOrCreate(ctx context.Context, userID, authorID int) (bool, error)
	// Delete 删除关注关系，不存在时返回 ErrFollowNotFound
	Delete(ctx context.Context, userID, authorID int) error
	Exists(ctx context.Context, userID, authorID int) (bool, error)
	// ListFollowing 用户关注的作者
	ListFollowing(ctx context.Context, userID int) ([]*model.User, error)
	// ListFollowers 关注该作者的用户
	ListFollowers(ctx context.Context, authorID int) ([]*model.User, error)
}
