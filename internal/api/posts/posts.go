package posts

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/middleware"
	"yatube-backend/internal/service"
	"yatube-backend/internal/storage"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadSize 帖子表单（含图片）的最大大小
const maxUploadSize = 32 << 20

// bindPostForm 读取 text、group、image、clear_image 字段，图片会先保存
func (h *PostHandler) bindPostForm(c *gin.Context) (*service.PostForm, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
			util.Logger.Warn("无法解析表单数据", zap.Error(err))
			return nil, errors.Wrap(errors.ErrBadRequest, "无法解析表单数据", err)
		}
	}

	form := &service.PostForm{Text: c.PostForm("text")}

	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		groupID, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Validation(map[string]string{"group": "选择的分组不存在"})
		}
		form.GroupID = &groupID
	}
	form.ClearImage, _ = strconv.ParseBool(c.PostForm("clear_image"))

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		location, err := storage.SaveImage(c.Request.Context(), h.images, file)
		if err != nil {
			return nil, err
		}
		form.Image = location
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
	default:
		return nil, errors.Wrap(errors.ErrBadRequest, "无法读取上传的图片", err)
	}

	return form, nil
}

// discardImage 保存帖子失败时删除已上传的图片
func (h *PostHandler) discardImage(c *gin.Context, form *service.PostForm) {
	if form == nil || form.Image == "" {
		return
	}
	if err := h.images.DeleteFile(c.Request.Context(), form.Image); err != nil {
		util.Logger.Warn("删除未使用的图片失败", zap.String("image", form.Image), zap.Error(err))
	}
}

// CreatePost 当前用户发帖
func (h *PostHandler) CreatePost(c *gin.Context) {
	form, err := h.bindPostForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), middleware.CurrentUserID(c), form)
	if err != nil {
		h.discardImage(c, form)
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID), zap.Int("author_id", post.AuthorID))
	target := postURL(post.ID)
	if post.Author != nil {
		target = profileURL(post.Author.Username)
	}
	respondRedirect(c, http.StatusCreated, "post", post, target, "帖子创建成功")
}

// EditPost 编辑帖子。先检查权限，非作者不会读取表单
func (h *PostHandler) EditPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	actorID := middleware.CurrentUserID(c)

	if _, err := h.posts.GetEditablePost(c.Request.Context(), actorID, id); err != nil {
		errors.HandleError(c, err)
		return
	}

	form, err := h.bindPostForm(c)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), actorID, id, form)
	if err != nil {
		h.discardImage(c, form)
		errors.HandleError(c, err)
		return
	}
	respondRedirect(c, http.StatusOK, "post", post, postURL(post.ID), "帖子更新成功")
}

// DeletePost 作者或管理员删除帖子
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.posts.DeletePost(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "帖子已删除")
}

// AddComment 评论帖子
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	form := &service.CommentForm{Text: c.PostForm("text")}
	comment, err := h.comments.AddComment(c.Request.Context(), middleware.CurrentUserID(c), id, form)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	respondRedirect(c, http.StatusCreated, "comment", comment, postURL(id), "评论成功")
}
