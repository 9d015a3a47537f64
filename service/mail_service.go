// file: service/mail_service.go

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"office-graph-api/logger"
	"office-graph-api/model"

	"github.com/sirupsen/logrus"
)

type graphEmailAddress struct {
	Address string `json:"address"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	Subject      string           `json:"subject"`
	Body         graphItemBody    `json:"body"`
	ToRecipients []graphRecipient `json:"toRecipients"`
	CcRecipients []graphRecipient `json:"ccRecipients,omitempty"`
}

type sendMailPayload struct {
	Message         graphMessage `json:"message"`
	SaveToSentItems bool         `json:"saveToSentItems"`
}

// MailService sends mail from the signed-in user's mailbox.
type MailService struct {
	graph *GraphClient
}

func NewMailService(graph *GraphClient) *MailService {
	return &MailService{graph: graph}
}

// Send delivers req as email. Only 202 Accepted counts as success; any
// other status is returned as a *ProviderError with the response body.
func (s *MailService) Send(ctx context.Context, email string, req model.SendEmailRequest) error {
	contentType := req.ContentType
	if contentType == "" {
		contentType = "Text"
	}

	payload := sendMailPayload{
		Message: graphMessage{
			Subject:      req.Subject,
			Body:         graphItemBody{ContentType: contentType, Content: req.Body},
			ToRecipients: recipients(req.To),
			CcRecipients: recipients(req.Cc),
		},
		SaveToSentItems: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"sender":     email,
		"recipients": len(req.To) + len(req.Cc),
	})

	resp, err := s.graph.Do(ctx, email, http.MethodPost, "/me/sendMail", bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		perr := newProviderError(resp)
		log.WithField("status_code", perr.Status).Warn("Mail provider rejected message")
		return perr
	}

	log.Info("Email accepted for delivery")
	return nil
}

func recipients(addresses []string) []graphRecipient {
	if len(addresses) == 0 {
		return nil
	}
	out := make([]graphRecipient, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, graphRecipient{EmailAddress: graphEmailAddress{Address: a}})
	}
	return out
}
