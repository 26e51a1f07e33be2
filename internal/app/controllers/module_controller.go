package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/services"
	"github.com/selimc/akademi/internal/middleware"
)

// ModuleController handles module management operations
type ModuleController struct {
	moduleService services.ModuleService
	videoService  services.VideoService
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService services.ModuleService, videoService services.VideoService) *ModuleController {
	return &ModuleController{
		moduleService: moduleService,
		videoService:  videoService,
	}
}

// GetModuleByID retrieves a module by ID
// @Summary Get module details
// @Description Retrieves a specific module by its ID
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Module} "Module retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid module ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules/{id} [get]
func (c *ModuleController) GetModuleByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	module, err := c.moduleService.GetModuleByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(module))
}

// UpdateModule updates an existing module
// @Summary Update a module
// @Description Updates a module's title and optionally its position
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID" Format(int64) minimum(1)
// @Param request body dto.UpdateModuleRequest true "Updated module information"
// @Success 200 {object} dto.APIResponse{data=models.Module} "Module updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	module, err := c.moduleService.UpdateModule(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(module))
}

// DeleteModule deletes a module
// @Summary Delete a module
// @Description Deletes a module together with its videos
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Module deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid module ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.moduleService.DeleteModule(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// ListModuleVideos retrieves a module's videos
// @Summary List module videos
// @Description Retrieves the videos of a module in position order
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Video} "Videos retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid module ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules/{id}/videos [get]
func (c *ModuleController) ListModuleVideos(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	videos, err := c.videoService.ListVideosByModule(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(videos))
}

// CreateModuleVideo creates a video under a module
// @Summary Create a video
// @Description Creates a new video at the end of the module's video list. The position is assigned server-side.
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Module ID" Format(int64) minimum(1)
// @Param request body dto.CreateVideoRequest true "Video information"
// @Success 201 {object} dto.APIResponse{data=models.Video} "Video created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules/{id}/videos [post]
func (c *ModuleController) CreateModuleVideo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	video, err := c.videoService.CreateVideo(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(video))
}
