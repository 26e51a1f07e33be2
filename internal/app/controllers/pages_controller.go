package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// PagesController serves the single-page frontend. Every page route returns
// the same index.html; client-side routing takes over from there. Access
// decisions happen in the role gate middleware before this runs.
type PagesController struct {
	staticDir string
}

// NewPagesController creates a new PagesController
func NewPagesController(staticDir string) *PagesController {
	return &PagesController{
		staticDir: staticDir,
	}
}

// Index serves the SPA entry point
func (c *PagesController) Index(ctx *gin.Context) {
	ctx.File(filepath.Join(c.staticDir, "index.html"))
}

// NotFound serves the SPA entry point for unknown non-API paths and a JSON
// 404 for API ones
func (c *PagesController) NotFound(ctx *gin.Context) {
	path := ctx.Request.URL.Path
	if len(path) >= 4 && path[:4] == "/api" {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "RES_001", "message": "Not found"}})
		return
	}
	ctx.File(filepath.Join(c.staticDir, "index.html"))
}
