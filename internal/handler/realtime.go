package handler

import (
	"encoding/json"
	"io"

	"github.com/4ndreams/GPS-sub001/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Stream godoc
// @Summary      Stream de eventos en tiempo real
// @Description  SSE que retransmite el canal de notificaciones: ordenActualizada, nuevaNotificacion, estadisticasActualizadas. Cada mensaje lleva la entidad cruda más un timestamp.
// @Tags         notificaciones
// @Produce      text/event-stream
// @Success      200
// @Router       /api/notificaciones/stream [get]
func Stream(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := rdb.Subscribe(c.Request.Context(), realtime.Channel)
		defer sub.Close()
		ch := sub.Channel()

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		// gin flushes after each SSEvent; the stream ends when the client
		// disconnects or the subscription channel closes.
		c.Stream(func(w io.Writer) bool {
			select {
			case msg, ok := <-ch:
				if !ok {
					return false
				}
				var m realtime.Message
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					log.Warn().Err(err).Msg("realtime: malformed pubsub payload")
					return true
				}
				c.SSEvent(m.Event, msg.Payload)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
