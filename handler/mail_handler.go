package handler

import (
	"net/http"
	"office-graph-api/common"
	"office-graph-api/logger"
	"office-graph-api/model"
	"office-graph-api/service"

	"github.com/sirupsen/logrus"
)

type MailHandler struct {
	service *service.MailService
}

func NewMailHandler(service *service.MailService) *MailHandler {
	return &MailHandler{service: service}
}

// SendEmail godoc
// @Summary      Send an email
// @Description  Sends mail from the signed-in user's mailbox through Microsoft Graph.
// @Tags         mail
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.SendEmailRequest  true  "Message"
// @Success      200      {object}  model.MessageResponse
// @Failure      400      {object}  common.AppError
// @Failure      401      {object}  common.AppError
// @Router       /send-email [post]
func (h *MailHandler) SendEmail(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SendEmailRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	email, appErr := userEmail(r)
	if appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"sender":     email,
		"recipients": len(req.To),
	}).Info("Send email request received")

	if err := h.service.Send(r.Context(), email, req); err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Email sent successfully"})
	return nil
}
