package user

import (
	"yatube-backend/internal/errors"
	"yatube-backend/internal/middleware"
	"yatube-backend/internal/service"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService service.UserServiceInterface
}

func NewProfileHandler(userService service.UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		util.Logger.Error("获取用户资料失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

// DeleteAccount 注销账户，帖子、评论和关注关系一起删除
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.userService.GetUserByID(ctx, middleware.CurrentUserID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if err := h.userService.DeleteUser(ctx, user.Username); err != nil {
		util.Logger.Error("注销账户失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}
	h.userService.Logout(c.GetString(middleware.TokenKey))

	errors.HandleSuccess(c, nil, "账户已成功注销")
}
