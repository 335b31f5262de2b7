package service

import (
	"context"
	"yatube-backend/internal/model"
)

// PostServiceInterface 帖子写操作
type PostServiceInterface interface {
	CreatePost(ctx context.Context, authorID int, form *PostForm) (*model.Post, error)
	GetEditablePost(ctx context.Context, actorID, postID int) (*model.Post, error)
	UpdatePost(ctx context.Context, actorID, postID int, form *PostForm) (*model.Post, error)
	DeletePost(ctx context.Context, actorID, postID int) error
}

// FeedServiceInterface 读操作：首页、分组、个人主页、关注流、帖子详情
type FeedServiceInterface interface {
	ListAll(ctx context.Context, page string) (*model.PostPage, error)
	ListByGroup(ctx context.Context, slug, page string) (*model.GroupFeed, error)
	ListByAuthor(ctx context.Context, username string, viewerID int, page string) (*model.ProfileFeed, error)
	ListFollowed(ctx context.Context, actorID int, page string) (*model.PostPage, error)
	GetPostDetail(ctx context.Context, postID int) (*model.PostDetail, error)
}

// CommentServiceInterface 评论
type CommentServiceInterface interface {
	AddComment(ctx context.Context, authorID, postID int, form *CommentForm) (*model.Comment, error)
}

// FollowServiceInterface 关注关系
type FollowServiceInterface interface {
	Follow(ctx context.Context, followerID int, username string) error
	Unfollow(ctx context.Context, followerID int, username string) error
	Followers(ctx context.Context, username string) ([]*model.User, error)
	Following(ctx context.Context, username string) ([]*model.User, error)
}

// GroupServiceInterface 分组管理
type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, form *GroupForm) (*model.Group, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)
	DeleteGroup(ctx context.Context, slug string) error
}

// UserServiceInterface 用户与认证
type UserServiceInterface interface {
	Register(ctx context.Context, user *model.User) error
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// 确保实现了对应接口
var (
	_ PostServiceInterface    = (*PostService)(nil)
	_ FeedServiceInterface    = (*FeedService)(nil)
	_ CommentServiceInterface = (*CommentService)(nil)
	_ FollowServiceInterface  = (*FollowService)(nil)
	_ GroupServiceInterface   = (*GroupService)(nil)
	_ UserServiceInterface    = (*UserService)(nil)
)
