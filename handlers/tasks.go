package handlers

import (
	"context"
	"net/http"

	"nhap/services/reminder"
	"nhap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SweepRunner runs one reminder sweep.
type SweepRunner interface {
	Run(ctx context.Context) (reminder.SweepResult, error)
}

type ReminderTaskHandler struct {
	Sweeper SweepRunner
}

func NewReminderTaskHandler(s SweepRunner) *ReminderTaskHandler {
	return &ReminderTaskHandler{Sweeper: s}
}

// RunReminderSweep triggers a sweep outside the schedule.
func (h *ReminderTaskHandler) RunReminderSweep(c *gin.Context) {
	res, err := h.Sweeper.Run(c.Request.Context())
	if err != nil {
		getLogger(c).Error("RunReminderSweep failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "reminder sweep failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}
