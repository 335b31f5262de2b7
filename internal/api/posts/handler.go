package posts

import (
	"fmt"
	"net/url"
	"strconv"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/service"
	"yatube-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子、评论和关注相关的接口
type PostHandler struct {
	posts    service.PostServiceInterface
	feed     service.FeedServiceInterface
	comments service.CommentServiceInterface
	follows  service.FollowServiceInterface
	images   storage.ImageStorage
}

func NewPostHandler(
	posts service.PostServiceInterface,
	feed service.FeedServiceInterface,
	comments service.CommentServiceInterface,
	follows service.FollowServiceInterface,
	images storage.ImageStorage,
) *PostHandler {
	return &PostHandler{
		posts:    posts,
		feed:     feed,
		comments: comments,
		follows:  follows,
		images:   images,
	}
}

// postID 解析路径中的帖子ID，非数字按不存在处理
func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "帖子不存在"))
		return 0, false
	}
	return id, true
}

func profileURL(username string) string {
	return "/api/profile/" + url.PathEscape(username)
}

func postURL(id int) string {
	return fmt.Sprintf("/api/posts/%d", id)
}

// respondRedirect 写操作成功后返回结果，并通过 Location 和 redirect 字段指明下一页
func respondRedirect(c *gin.Context, status int, key string, data interface{}, target, message string) {
	c.Header("Location", target)
	errors.HandleStatus(c, status, gin.H{key: data, "redirect": target}, message)
}
