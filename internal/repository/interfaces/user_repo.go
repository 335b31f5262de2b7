package interfaces

import (
	"context"
	"yatube-backend/internal/model"
)

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Delete 删除用户，其帖子、评论和关注关系由外键级联删除
	Delete(ctx context.Context, id int) error
}
