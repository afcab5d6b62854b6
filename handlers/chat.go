package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/david578-arc/invoice-analytics/chat"
)

type chatRequest struct {
	Query string `json:"query"`
}

// ChatWithData answers a natural-language question with a canned query
// @Summary      Chat with data
// @Description  Classify the question against a fixed intent table and run the matching canned aggregate query. The executed SQL is echoed back.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      chatRequest  true  "Question"
// @Success      200      {object}  chat.Answer
// @Failure      400      {object}  errorResponse
// @Router       /chat-with-data [post]
// @Security     BearerAuth
func ChatWithData(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := chat.Ask(r.Context(), DB, req.Query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answer)
}
