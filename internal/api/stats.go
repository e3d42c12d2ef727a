package api

import (
	"net/http"
	"time"

	"character-studio/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the statistics view and the full-collection ZIP
// backup.
type StatsHandler struct {
	stats  *service.StatsService
	backup *service.BackupService
}

func NewStatsHandler(stats *service.StatsService, backup *service.BackupService) *StatsHandler {
	return &StatsHandler{stats: stats, backup: backup}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) DownloadBackup(c *gin.Context) {
	archive, err := h.backup.BuildZip(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	filename := "characters_" + time.Now().Format("2006-01-02") + ".zip"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/zip", archive)
}
