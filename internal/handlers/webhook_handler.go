package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/usecase/turno"
)

const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	process *turno.ProcessPaymentEvent
}

func NewWebhookHandler(process *turno.ProcessPaymentEvent) *WebhookHandler {
	return &WebhookHandler{process: process}
}

// webhookBody accepts data.id as a string or a number.
type webhookBody struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// Receive always answers 200 so the provider does not retry; anything it
// cannot use is acknowledged as ignored.
func (h *WebhookHandler) Receive(c *gin.Context) {
	evt := parsePaymentEvent(c)

	res := h.process.Execute(c.Request.Context(), evt)
	log.Info().
		Str("type", evt.Type).
		Str("payment_id", evt.DataID).
		Str("result", string(res)).
		Msg("payment webhook processed")

	c.JSON(http.StatusOK, gin.H{"status": string(res)})
}

// parsePaymentEvent reads {type, data.id} from the JSON body and falls back
// to the type/topic and data.id/id query parameters.
func parsePaymentEvent(c *gin.Context) turno.PaymentEvent {
	var evt turno.PaymentEvent

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err == nil && len(raw) > 0 {
		var body webhookBody
		if err := json.Unmarshal(raw, &body); err == nil {
			evt.Type = body.Type
			if evt.Type == "" {
				evt.Type = body.Topic
			}
			evt.DataID = rawID(body.Data.ID)
		}
	}

	if evt.Type == "" {
		evt.Type = c.Query("type")
	}
	if evt.Type == "" {
		evt.Type = c.Query("topic")
	}
	if evt.DataID == "" {
		evt.DataID = c.Query("data.id")
	}
	if evt.DataID == "" {
		evt.DataID = c.Query("id")
	}

	return evt
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
