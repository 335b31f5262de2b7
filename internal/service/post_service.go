package service

import (
	"context"
	"time"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/repository/interfaces"
	"yatube-backend/internal/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var postsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "yatube_posts_written_total",
	Help: "The total number of posts created, updated or deleted",
}, []string{"op"})

// PostService 处理帖子的创建、编辑和删除
type PostService struct {
	posts  interfaces.PostRepository
	groups interfaces.GroupRepository
	users  interfaces.UserRepository
	now    func() time.Time
}

func NewPostService(posts interfaces.PostRepository, groups interfaces.GroupRepository, users interfaces.UserRepository) *PostService {
	return &PostService{
		posts:  posts,
		groups: groups,
		users:  users,
		now:    time.Now,
	}
}

func (s *PostService) validate(ctx context.Context, form *PostForm) error {
	if err := validateForm(form, &form.Text); err != nil {
		return err
	}
	if form.GroupID == nil {
		return nil
	}
	group, err := s.groups.FindByID(ctx, *form.GroupID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询分组失败", err)
	}
	if group == nil {
		return errors.Validation(map[string]string{"group": "选择的分组不存在"})
	}
	return nil
}

// CreatePost 创建帖子，pub_date 取当前时间，作者为当前用户。返回的帖子带上作者信息
func (s *PostService) CreatePost(ctx context.Context, authorID int, form *PostForm) (*model.Post, error) {
	if err := s.validate(ctx, form); err != nil {
		return nil, err
	}

	post := &model.Post{
		Text:     form.Text,
		PubDate:  s.now().UTC(),
		AuthorID: authorID,
		GroupID:  form.GroupID,
		Image:    form.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}
	if author, err := s.users.FindByID(ctx, authorID); err == nil {
		post.Author = author
	}

	postsWritten.WithLabelValues("create").Inc()
	return post, nil
}

func (s *PostService) getPost(ctx context.Context, postID int) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "获取帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return post, nil
}

// GetEditablePost 返回帖子，非作者返回 ErrForbidden。在读取表单之前调用
func (s *PostService) GetEditablePost(ctx context.Context, actorID, postID int) (*model.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		util.Logger.Warn("非作者尝试编辑帖子",
			zap.Int("post_id", postID), zap.Int("actor_id", actorID))
		return nil, errors.New(errors.ErrForbidden, "只有作者可以编辑帖子")
	}
	return post, nil
}

// UpdatePost 覆盖 text、group、image；pub_date 和作者不变
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID int, form *PostForm) (*model.Post, error) {
	post, err := s.GetEditablePost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, form); err != nil {
		return nil, err
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	post.Group = nil
	switch {
	case form.Image != "":
		post.Image = form.Image
	case form.ClearImage:
		post.Image = ""
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}

	postsWritten.WithLabelValues("update").Inc()
	return post, nil
}

// DeletePost 作者或管理员可以删除帖子，评论保留但 post_id 置空
func (s *PostService) DeletePost(ctx context.Context, actorID, postID int) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
		}
		if !actor.IsAdmin() {
			return errors.New(errors.ErrForbidden, "只有作者可以删除帖子")
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}

	postsWritten.WithLabelValues("delete").Inc()
	return nil
}
