package posts

import (
	"context"
	"mime/multipart"
	"yatube-backend/internal/model"
	"yatube-backend/internal/service"
	"yatube-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID int, form *service.PostForm) (*model.Post, error) {
	args := m.Called(ctx, authorID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) GetEditablePost(ctx context.Context, actorID, postID int) (*model.Post, error) {
	args := m.Called(ctx, actorID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, actorID, postID int, form *service.PostForm) (*model.Post, error) {
	args := m.Called(ctx, actorID, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, actorID, postID int) error {
	args := m.Called(ctx, actorID, postID)
	return args.Error(0)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListAll(ctx context.Context, page string) (*model.PostPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostPage), args.Error(1)
}

func (m *MockFeedService) ListByGroup(ctx context.Context, slug, page string) (*model.GroupFeed, error) {
	args := m.Called(ctx, slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupFeed), args.Error(1)
}

func (m *MockFeedService) ListByAuthor(ctx context.Context, username string, viewerID int, page string) (*model.ProfileFeed, error) {
	args := m.Called(ctx, username, viewerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileFeed), args.Error(1)
}

func (m *MockFeedService) ListFollowed(ctx context.Context, actorID int, page string) (*model.PostPage, error) {
	args := m.Called(ctx, actorID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostPage), args.Error(1)
}

func (m *MockFeedService) GetPostDetail(ctx context.Context, postID int) (*model.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostDetail), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, authorID, postID int, form *service.CommentForm) (*model.Comment, error) {
	args := m.Called(ctx, authorID, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, followerID int, username string) error {
	args := m.Called(ctx, followerID, username)
	return args.Error(0)
}

func (m *MockFollowService) Unfollow(ctx context.Context, followerID int, username string) error {
	args := m.Called(ctx, followerID, username)
	return args.Error(0)
}

func (m *MockFollowService) Followers(ctx context.Context, username string) ([]*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockFollowService) Following(ctx context.Context, username string) ([]*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadFile(ctx context.Context, file *multipart.FileHeader, path string) (string, error) {
	args := m.Called(ctx, file, path)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) DeleteFile(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

var (
	_ service.PostServiceInterface    = (*MockPostService)(nil)
	_ service.FeedServiceInterface    = (*MockFeedService)(nil)
	_ service.CommentServiceInterface = (*MockCommentService)(nil)
	_ service.FollowServiceInterface  = (*MockFollowService)(nil)
	_ storage.ImageStorage            = (*MockImageStorage)(nil)
)
