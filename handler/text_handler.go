package handler

import (
	"net/http"
	"office-graph-api/common"
	"office-graph-api/logger"
	"office-graph-api/model"
	"office-graph-api/service"
)

type TextHandler struct {
	service service.ITextGenerator
}

func NewTextHandler(service service.ITextGenerator) *TextHandler {
	return &TextHandler{service: service}
}

// GenerateText godoc
// @Summary      Generate text
// @Description  Returns a chat completion for the prompt. Failures are reported, never replaced with placeholder text.
// @Tags         generation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.GenerateTextRequest  true  "Prompt"
// @Success      200      {object}  model.GenerateTextResponse
// @Failure      429      {object}  common.AppError
// @Failure      502      {object}  common.AppError
// @Router       /generate-text [post]
func (h *TextHandler) GenerateText(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GenerateTextRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	email, appErr := userEmail(r)
	if appErr != nil {
		return appErr
	}
	logger.Log.WithField("email", email).Info("Generate text request received")

	text, err := h.service.Generate(r.Context(), req.Prompt, req.MaxTokens)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, model.GenerateTextResponse{Text: text})
	return nil
}
