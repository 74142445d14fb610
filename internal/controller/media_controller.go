package controller

import (
	"os"
	"path/filepath"

	"county_training_backend/internal/model"
	"county_training_backend/internal/service"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MediaController 处理 Lesson 页课件媒体上传
type MediaController struct {
	StorageService *service.StorageService
}

func NewMediaController(storageService *service.StorageService) *MediaController {
	return &MediaController{StorageService: storageService}
}

// UploadMedia godoc
// @Summary 上传课件媒体
// @Description 上传 Lesson 页的视频或图片。视频会探测时长并换算建议的课程分钟数，同时生成封面图
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "媒体文件"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失或类型不允许"
// @Failure 500 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/media [post]
func (c *MediaController) UploadMedia(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	mimeType, err := util.ValidateMimeType(src, []string{"video/", "image/"})
	src.Close()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), model.GenerateUUID()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	filename := model.GenerateUUID() + filepath.Ext(file.Filename)
	url, err := c.StorageService.UploadFile(ctx, "media/"+filename, tmpPath, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result := gin.H{
		"url":      url,
		"mimeType": mimeType,
	}

	if util.IsVideo(mimeType) {
		info, err := util.ProbeMedia(tmpPath)
		if err == nil {
			result["duration"] = info.Duration
			result["width"] = info.Width
			result["height"] = info.Height
			result["estMinutes"] = util.EstimateMinutes(info.Duration)
		}

		thumbPath := filepath.Join(os.TempDir(), model.GenerateUUID()+".jpg")
		if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
			thumbName := "media/thumbs/" + model.GenerateUUID() + ".jpg"
			if thumbURL, err := c.StorageService.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
				result["thumbnailUrl"] = thumbURL
			}
			os.Remove(thumbPath)
		}
	}

	util.Created(ctx, result)
}
