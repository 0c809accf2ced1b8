package handlers

import (
	"context"
	"net/http"

	"nhap/events"
	"nhap/services/dispatcher"
	"nhap/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingWriteHandler reacts to one decoded booking write.
type BookingWriteHandler interface {
	HandleBookingWrite(ctx context.Context, w *events.BookingWrite) dispatcher.Result
}

// BookingEventHandler receives Firestore trigger deliveries over HTTP.
type BookingEventHandler struct {
	Decoder    events.Decoder
	Dispatcher BookingWriteHandler
}

func NewBookingEventHandler(decoder events.Decoder, d BookingWriteHandler) *BookingEventHandler {
	return &BookingEventHandler{Decoder: decoder, Dispatcher: d}
}

// HandleBookingEvent decodes the trigger body and dispatches it. Send failures
// still answer 200: they are final and must not make the platform redeliver.
func (h *BookingEventHandler) HandleBookingEvent(c *gin.Context) {
	logger := getLogger(c)

	body, err := c.GetRawData()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read event body", err.Error())
		return
	}

	write, err := h.Decoder.Decode(body)
	if err != nil {
		logger.Warn("HandleBookingEvent: malformed event", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "malformed event", err.Error())
		return
	}
	if write.EventID == "" {
		write.EventID = uuid.New().String()
	}

	res := h.Dispatcher.HandleBookingWrite(c.Request.Context(), write)
	c.JSON(http.StatusOK, gin.H{
		"eventId":    write.EventID,
		"changes":    res.Changes,
		"suppressed": res.Suppressed,
		"deliveries": res.Deliveries,
		"sent":       res.Sent,
		"skipped":    res.Skipped,
		"failed":     res.Failed,
	})
}
