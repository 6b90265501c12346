package controller

import (
	"dating_app_backend/internal/service"
	"dating_app_backend/internal/util"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// multipart 头部等额外开销
const multipartOverhead = 1 << 20

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// UploadImage godoc
// @Summary 上传图片
// @Description 注册前也可调用，字段名为 image，大小不超过 5MB
// @Tags 上传
// @Accept  multipart/form-data
// @Produce  json
// @Param   image formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "上传成功，data.imageUrl 为图片地址"
// @Failure 400 {object} util.Response "未上传文件或类型不正确"
// @Failure 413 {object} util.Response "文件过大"
// @Failure 500 {object} util.Response "上传失败"
// @Router /api/upload/image [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	maxBytes := c.StorageService.MaxBytes
	if maxBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes+multipartOverhead)
	}

	fileHeader, err := ctx.FormFile(util.ImageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			util.HandleError(ctx, util.ErrFileTooLarge)
			return
		}
		util.HandleError(ctx, util.ErrNoFile)
		return
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		util.HandleError(ctx, util.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadImage(ctx.Request.Context(),
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Image uploaded successfully", gin.H{"imageUrl": url})
}
