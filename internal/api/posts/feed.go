package posts

import (
	"yatube-backend/internal/errors"
	"yatube-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Index 首页，所有帖子
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.feed.ListAll(c.Request.Context(), c.Query("page"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, page, "")
}

// GroupPosts 分组下的帖子
func (h *PostHandler) GroupPosts(c *gin.Context) {
	feed, err := h.feed.ListByGroup(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, feed, "")
}

// Profile 用户主页，登录用户可以看到是否已关注
func (h *PostHandler) Profile(c *gin.Context) {
	feed, err := h.feed.ListByAuthor(c.Request.Context(),
		c.Param("username"), middleware.CurrentUserID(c), c.Query("page"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, feed, "")
}

// PostDetail 帖子详情和评论
func (h *PostHandler) PostDetail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	detail, err := h.feed.GetPostDetail(c.Request.Context(), id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, detail, "")
}

// FollowIndex 当前用户关注的作者的帖子
func (h *PostHandler) FollowIndex(c *gin.Context) {
	page, err := h.feed.ListFollowed(c.Request.Context(), middleware.CurrentUserID(c), c.Query("page"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, page, "")
}
