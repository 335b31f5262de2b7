package service

import (
	"context"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
	"yatube-backend/internal/util"

	"go.uber.org/zap"
)

// FollowService 维护关注关系
type FollowService struct {
	follows interfaces.FollowRepository
	users   interfaces.UserRepository
}

func NewFollowService(follows interfaces.FollowRepository, users interfaces.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

func (s *FollowService) author(ctx context.Context, username string) (*model.User, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return author, nil
}

// Follow 关注作者。关注自己时什么也不做，重复关注幂等
func (s *FollowService) Follow(ctx context.Context, followerID int, username string) error {
	author, err := s.author(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == followerID {
		return nil
	}

	created, err := s.follows.GetOrCreate(ctx, followerID, author.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "关注失败", err)
	}
	util.Logger.Debug("关注作者",
		zap.Int("user_id", followerID), zap.Int("author_id", author.ID), zap.Bool("created", created))
	return nil
}

// Unfollow 取消关注。关系不存在时返回 ErrFollowNotFound
func (s *FollowService) Unfollow(ctx context.Context, followerID int, username string) error {
	author, err := s.author(ctx, username)
	if err != nil {
		return err
	}

	if err := s.follows.Delete(ctx, followerID, author.ID); err != nil {
		if errors.IsNotFound(err) {
			return err
		}
		return errors.Wrap(errors.ErrDatabase, "取消关注失败", err)
	}
	return nil
}

// Followers 关注该用户的人
func (s *FollowService) Followers(ctx context.Context, username string) ([]*model.User, error) {
	author, err := s.author(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowers(ctx, author.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取关注者列表失败", err)
	}
	return users, nil
}

// Following 该用户关注的人
func (s *FollowService) Following(ctx context.Context, username string) ([]*model.User, error) {
	user, err := s.author(ctx, username)
	if err != nil {
		return nil, err
	}
	users, err := s.follows.ListFollowing(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取关注列表失败", err)
	}
	return users, nil
}
