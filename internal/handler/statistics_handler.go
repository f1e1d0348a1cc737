package handler

import (
	"net/http"

	"restaurant-recap/internal/middleware"
	"restaurant-recap/internal/service"
	"restaurant-recap/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("/restaurants", middleware.RequireRole(middleware.AllRoles...), h.GetStatistics)
	}
}

// @Summary      Report coverage per restaurant
// @Description  Number of imported days, missing days and net revenue of every restaurant. Defaults to the current month up to today.
// @Tags         Statistics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} response.Response{data=service.StatisticsResponse}
// @Failure      400 {object} response.Response "Invalid date range"
// @Failure      401 {object} response.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /api/statistics/restaurants [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	from, err := optionalDate(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	to, err := optionalDate(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
