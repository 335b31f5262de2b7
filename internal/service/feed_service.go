package service

import (
	"context"
	"yatube-backend/internal/common"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
)

// FeedService 构建按 pub_date 倒序、分页的帖子列表
type FeedService struct {
	posts    interfaces.PostRepository
	groups   interfaces.GroupRepository
	users    interfaces.UserRepository
	follows  interfaces.FollowRepository
	comments interfaces.CommentRepository
	perPage  int
}

func NewFeedService(
	posts interfaces.PostRepository,
	groups interfaces.GroupRepository,
	users interfaces.UserRepository,
	follows interfaces.FollowRepository,
	comments interfaces.CommentRepository,
) *FeedService {
	return &FeedService{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		comments: comments,
		perPage:  common.ItemsPerPage,
	}
}

// paginate 先计数再取页，页码越界时落在最后一页
func (s *FeedService) paginate(ctx context.Context, filter interfaces.PostFilter, rawPage string) (*model.PostPage, error) {
	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}

	paginator := common.NewPaginator(total, s.perPage)
	page := paginator.GetPage(rawPage)

	posts := []*model.Post{}
	if total > 0 {
		posts, err = s.posts.List(ctx, filter, s.perPage, paginator.Offset(page))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "获取帖子列表失败", err)
		}
		if posts == nil {
			posts = []*model.Post{}
		}
	}

	return &model.PostPage{
		Posts: posts,
		Pagination: model.Pagination{
			Page:        page,
			NumPages:    paginator.NumPages(),
			PerPage:     s.perPage,
			Total:       total,
			HasNext:     page < paginator.NumPages(),
			HasPrevious: page > 1,
		},
	}, nil
}

// ListAll 首页：所有帖子
func (s *FeedService) ListAll(ctx context.Context, page string) (*model.PostPage, error) {
	return s.paginate(ctx, interfaces.PostFilter{}, page)
}

// ListByGroup 分组页，slug 不存在时返回 ErrGroupNotFound
func (s *FeedService) ListByGroup(ctx context.Context, slug, page string) (*model.GroupFeed, error) {
	group, err := s.groups.FindBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询分组失败", err)
	}
	if group == nil {
		return nil, errors.New(errors.ErrGroupNotFound, "分组不存在")
	}

	posts, err := s.paginate(ctx, interfaces.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &model.GroupFeed{Group: group, Page: posts}, nil
}

// ListByAuthor 个人主页。viewerID 为 0 表示匿名访问
func (s *FeedService) ListByAuthor(ctx context.Context, username string, viewerID int, page string) (*model.ProfileFeed, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	posts, err := s.paginate(ctx, interfaces.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.follows.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询关注状态失败", err)
		}
	}

	return &model.ProfileFeed{
		Author:     author,
		PostsCount: posts.Pagination.Total,
		Following:  following,
		Page:       posts,
	}, nil
}

// ListFollowed 关注流：只包含当前用户关注的作者的帖子，没有关注时为空页
func (s *FeedService) ListFollowed(ctx context.Context, actorID int, page string) (*model.PostPage, error) {
	return s.paginate(ctx, interfaces.PostFilter{FollowerID: &actorID}, page)
}

// GetPostDetail 帖子详情：作者的帖子总数和评论
func (s *FeedService) GetPostDetail(ctx context.Context, postID int) (*model.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	count, err := s.posts.Count(ctx, interfaces.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计帖子失败", err)
	}

	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取评论失败", err)
	}
	if comments == nil {
		comments = []*model.Comment{}
	}

	return &model.PostDetail{
		Post:             post,
		AuthorPostsCount: count,
		Comments:         comments,
	}, nil
}
