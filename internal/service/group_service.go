package service

import (
	"context"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
)

type GroupService struct {
	groups interfaces.GroupRepository
}

func NewGroupService(groups interfaces.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

func (s *GroupService) CreateGroup(ctx context.Context, form *GroupForm) (*model.Group, error) {
	if err := validateForm(form, &form.Title, &form.Slug, &form.Description); err != nil {
		return nil, err
	}

	group := &model.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		if errors.Is(err, errors.ErrGroupExists) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrDatabase, "创建分组失败", err)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*model.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取分组列表失败", err)
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	return groups, nil
}

// DeleteGroup 删除分组，分组下的帖子保留
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询分组失败", err)
	}
	if group == nil {
		return errors.New(errors.ErrGroupNotFound, "分组不存在")
	}
	return s.groups.Delete(ctx, group.ID)
}
