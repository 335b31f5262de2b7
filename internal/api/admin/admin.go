package admin

import (
	"net/http"
	"strconv"
	"yatube-backend/internal/cache"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/service"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorStats 按错误码统计的请求错误
type ErrorStats interface {
	GetErrorCounts() map[errors.ErrorCode]int
}

// AdminHandler 按功能模块组织处理方法
type AdminHandler struct {
	groups  service.GroupServiceInterface
	users   service.UserServiceInterface
	follows service.FollowServiceInterface
	pages   cache.Store
	stats   ErrorStats
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(
	groups service.GroupServiceInterface,
	users service.UserServiceInterface,
	follows service.FollowServiceInterface,
	pages cache.Store,
	stats ErrorStats,
) *AdminHandler {
	return &AdminHandler{
		groups:  groups,
		users:   users,
		follows: follows,
		pages:   pages,
		stats:   stats,
	}
}

// 分组管理
func (h *AdminHandler) GetGroups(c *gin.Context) {
	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": groups,
	})
}

func (h *AdminHandler) CreateGroup(c *gin.Context) {
	var form service.GroupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的请求数据", err))
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), &form)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("分组创建成功", zap.String("slug", group.Slug))
	c.JSON(http.StatusCreated, gin.H{
		"code":    201,
		"message": "分组创建成功",
		"data":    group,
	})
}

func (h *AdminHandler) DeleteGroup(c *gin.Context) {
	if err := h.groups.DeleteGroup(c.Request.Context(), c.Param("slug")); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "分组已删除",
	})
}

// 用户管理
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.users.DeleteUser(c.Request.Context(), username); err != nil {
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("管理员删除用户", zap.String("username", username))
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "用户已删除",
	})
}

func (h *AdminHandler) GetFollowers(c *gin.Context) {
	users, err := h.follows.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": users,
	})
}

func (h *AdminHandler) GetFollowing(c *gin.Context) {
	users, err := h.follows.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": users,
	})
}

// 系统管理
func (h *AdminHandler) ClearPageCache(c *gin.Context) {
	if err := h.pages.Clear(c.Request.Context()); err != nil {
		util.Logger.Error("清空页面缓存失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrCache, "清空页面缓存失败", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": "页面缓存已清空",
	})
}

func (h *AdminHandler) GetErrorStats(c *gin.Context) {
	counts := make(map[string]int)
	for code, n := range h.stats.GetErrorCounts() {
		counts[strconv.Itoa(int(code))] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": counts,
	})
}
