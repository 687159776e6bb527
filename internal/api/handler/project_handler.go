package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/service"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/response"
)

// ProjectHandler project HTTP handler
type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": projects})
}
