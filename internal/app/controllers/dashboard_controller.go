package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selimc/akademi/internal/app/models/dto"
	"github.com/selimc/akademi/internal/app/services"
	"github.com/selimc/akademi/internal/middleware"
)

// DashboardController serves the student-facing read endpoints
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// MyCourses retrieves the authenticated student's courses
// @Summary List my courses
// @Description Retrieves the courses the authenticated student is enrolled in, in enrollment order
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/courses [get]
func (c *DashboardController) MyCourses(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	courses, err := c.dashboardService.MyCourses(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CourseDetail retrieves the full content tree of an enrolled course
// @Summary Get course content
// @Description Retrieves a course with its modules and videos nested in position order. Only available for courses the student is enrolled in.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course content retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not enrolled in this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/courses/{id} [get]
func (c *DashboardController) CourseDetail(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.dashboardService.CourseDetail(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}
