// Package storage 保存帖子图片，支持本地磁盘、S3 和 GCS
package storage

import (
	"context"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/util"
)

// ImageDir 帖子图片的存储目录
const ImageDir = "posts"

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// ImageStorage 图片存储后端，UploadFile 返回可以保存在帖子上的地址
type ImageStorage interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, path string) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

// ImagePath 生成不会重名的图片路径 posts/<uuid>_<name>
func ImagePath(filename string) string {
	return path.Join(ImageDir, util.GenerateUniqueFilename(filename))
}

// ValidateImage 只接受常见图片格式
func ValidateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return errors.Validation(map[string]string{"image": "请上传图片文件"})
	}
	ct := file.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" && !strings.HasPrefix(ct, "image/") {
		return errors.Validation(map[string]string{"image": "请上传图片文件"})
	}
	return nil
}

// SaveImage 校验并保存上传的图片
func SaveImage(ctx context.Context, s ImageStorage, file *multipart.FileHeader) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}
	location, err := s.UploadFile(ctx, file, ImagePath(file.Filename))
	if err != nil {
		return "", errors.Wrap(errors.ErrStorage, "保存图片失败", err)
	}
	return location, nil
}
