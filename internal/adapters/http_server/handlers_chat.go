package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/internal/app"
)

type sendMessageReq struct {
	ReceiverID string  `json:"receiver_id"`
	BookingID  *string `json:"booking_id"`
	Content    string  `json:"content"`
}

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req sendMessageReq
	if !decode(w, r, &req) {
		return
	}
	if req.ReceiverID == "" || req.Content == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "receiver_id and content are required")
		return
	}
	if req.ReceiverID == p.UserID {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "cannot message yourself")
		return
	}
	msg, err := h.Chat.Send(r.Context(), app.SendMessageInput{
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Content:    req.Content,
	}, p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMessageDTO(msg))
}

func (h *Handlers) conversation(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	msgs, err := h.Chat.Conversation(r.Context(), p.UserID, chi.URLParam(r, "userID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageViewDTO(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out, "count": len(out)})
}

func (h *Handlers) serveWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "token query parameter is required")
		return
	}
	p, err := h.Tokens.Verify(token)
	if err != nil {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
		return
	}
	if err := h.WS.Serve(w, r, p.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", p.UserID).Msg("ws_upgrade_failed")
	}
}
