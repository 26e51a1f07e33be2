package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/services"
	"github.com/selimc/akademi/internal/middleware"
)

// VideoController handles video management operations
type VideoController struct {
	videoService services.VideoService
}

// NewVideoController creates a new VideoController
func NewVideoController(videoService services.VideoService) *VideoController {
	return &VideoController{
		videoService: videoService,
	}
}

// GetVideoByID retrieves a video by ID
// @Summary Get video details
// @Description Retrieves a specific video by its ID
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Video} "Video retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid video ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Video not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /videos/{id} [get]
func (c *VideoController) GetVideoByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	video, err := c.videoService.GetVideoByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(video))
}

// UpdateVideo updates an existing video
// @Summary Update a video
// @Description Updates a video's title, stream reference and optionally its position
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID" Format(int64) minimum(1)
// @Param request body dto.UpdateVideoRequest true "Updated video information"
// @Success 200 {object} dto.APIResponse{data=models.Video} "Video updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Video not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /videos/{id} [put]
func (c *VideoController) UpdateVideo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	video, err := c.videoService.UpdateVideo(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(video))
}

// DeleteVideo deletes a video
// @Summary Delete a video
// @Description Deletes a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Video deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid video ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Video not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /videos/{id} [delete]
func (c *VideoController) DeleteVideo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.videoService.DeleteVideo(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
