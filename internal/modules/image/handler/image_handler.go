package handler

import (
	"net/http"
	"strconv"

	"github.com/adromero/frame-sync/internal/modules/common/httpx"
	moduledto "github.com/adromero/frame-sync/internal/modules/image/dto"
	imageservice "github.com/adromero/frame-sync/internal/modules/image/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httpx.WriteValidationError(c, "请选择文件")
		return
	}

	deviceIDs, err := imageservice.ParseAllowedDevices(c.PostForm("allowed_devices"))
	if err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	result, err := h.imageService.Upload(c.Request.Context(), file, c.ClientIP(), deviceIDs)
	if err != nil {
		httpx.WriteServiceError(c, err, "上传失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"filename":        result.Image.Filename,
		"url":             result.URL,
		"uploader":        result.Uploader,
		"allowed_devices": result.AllowedDevices,
		"message":         "上传成功",
	})
}

// ListImages 图库列表，携带 page 或 page_size 时进入分页模式
func (h *Handler) ListImages(c *gin.Context) {
	query := moduledto.GalleryQuery{UserAddress: c.Query("user")}
	if c.Query("mine") == "1" {
		query.UserAddress = c.ClientIP()
	}

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			httpx.WriteValidationError(c, "page 参数错误")
			return
		}
		query.Paged = true
		query.Page = page
	}
	if raw, ok := c.GetQuery("page_size"); ok {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 {
			httpx.WriteValidationError(c, "page_size 参数错误")
			return
		}
		query.Paged = true
		query.PageSize = pageSize
	}

	resp, err := h.imageService.ListGallery(c.Request.Context(), query)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图片列表失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), c.Param("name")); err != nil {
		httpx.WriteServiceError(c, err, "删除失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "删除成功"})
}

// RotateImage 旋转原图，未指定角度时按 90 度处理
func (h *Handler) RotateImage(c *gin.Context) {
	var req moduledto.RotateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.WriteValidationError(c, "参数错误")
			return
		}
	}
	if req.Degrees == 0 {
		req.Degrees = 90
	}

	image, err := h.imageService.Rotate(c.Request.Context(), c.Param("name"), req.Degrees, req.Clockwise)
	if err != nil {
		httpx.WriteServiceError(c, err, "旋转失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "width": image.Width, "height": image.Height})
}

// ServeOriginal 输出原图
func (h *Handler) ServeOriginal(c *gin.Context) {
	image, rc, err := h.imageService.OpenOriginal(c.Request.Context(), c.Param("name"))
	if err != nil {
		httpx.WriteServiceError(c, err, "读取图片失败")
		return
	}
	defer func() { _ = rc.Close() }()

	if httpx.NotModified(c, httpx.ImageETag(image.ID, image.Revision, "")) {
		return
	}
	c.DataFromReader(http.StatusOK, image.Size, image.MimeType, rc, nil)
}
