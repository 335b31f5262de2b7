package interfaces

import (
	"context"
	"yatube-backend/internal/model"
)

// GroupRepository 分组的数据库操作
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	FindByID(ctx context.Context, id int) (*model.Group, error)
	FindBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]*model.Group, error)
	// Delete 删除分组，posts.group_id 由外键置空
	Delete(ctx context.Context, id int) error
}
