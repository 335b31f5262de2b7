package posts

import (
	"net/http"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ProfileFollow 关注作者，重复关注或关注自己不会报错
func (h *PostHandler) ProfileFollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.follows.Follow(c.Request.Context(), middleware.CurrentUserID(c), username); err != nil {
		errors.HandleError(c, err)
		return
	}
	respondRedirect(c, http.StatusOK, "username", username, profileURL(username), "关注成功")
}

// ProfileUnfollow 取消关注，没有关注时返回 404
func (h *PostHandler) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.follows.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), username); err != nil {
		errors.HandleError(c, err)
		return
	}
	respondRedirect(c, http.StatusOK, "username", username, profileURL(username), "已取消关注")
}
