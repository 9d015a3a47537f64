package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"office-graph-api/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(context.Context, string) (string, error) {
	return s.token, s.err
}

func TestMailService_Send(t *testing.T) {
	req := model.SendEmailRequest{
		To:          []string{"grace@contoso.com"},
		Cc:          []string{"alan@contoso.com"},
		Subject:     "Quarterly numbers",
		Body:        "<p>Attached.</p>",
		ContentType: "HTML",
	}

	t.Run("accepted", func(t *testing.T) {
		var got sendMailPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1.0/me/sendMail", r.URL.Path)
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		svc := NewMailService(NewGraphClient(srv.URL+"/v1.0", srv.Client(), staticTokens{token: "access-1"}))
		err := svc.Send(context.Background(), "ada@contoso.com", req)

		require.NoError(t, err)
		assert.Equal(t, "Quarterly numbers", got.Message.Subject)
		assert.Equal(t, "HTML", got.Message.Body.ContentType)
		assert.Equal(t, "<p>Attached.</p>", got.Message.Body.Content)
		require.Len(t, got.Message.ToRecipients, 1)
		assert.Equal(t, "grace@contoso.com", got.Message.ToRecipients[0].EmailAddress.Address)
		require.Len(t, got.Message.CcRecipients, 1)
		assert.True(t, got.SaveToSentItems)
	})

	t.Run("content type defaults to text", func(t *testing.T) {
		var got sendMailPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		plain := req
		plain.ContentType = ""
		svc := NewMailService(NewGraphClient(srv.URL, srv.Client(), staticTokens{token: "access-1"}))

		require.NoError(t, svc.Send(context.Background(), "ada@contoso.com", plain))
		assert.Equal(t, "Text", got.Message.Body.ContentType)
	})

	t.Run("provider error body is returned verbatim", func(t *testing.T) {
		const body = `{"error":{"code":"ErrorInvalidRecipients","message":"At least one recipient is not valid."}}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, body)
		}))
		defer srv.Close()

		svc := NewMailService(NewGraphClient(srv.URL, srv.Client(), staticTokens{token: "access-1"}))
		err := svc.Send(context.Background(), "ada@contoso.com", req)

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusBadRequest, perr.Status)
		assert.Equal(t, body, perr.Body)
	})

	t.Run("200 is not treated as success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		svc := NewMailService(NewGraphClient(srv.URL, srv.Client(), staticTokens{token: "access-1"}))
		err := svc.Send(context.Background(), "ada@contoso.com", req)

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusOK, perr.Status)
	})

	t.Run("no token means no call", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		svc := NewMailService(NewGraphClient(srv.URL, srv.Client(), staticTokens{err: ErrNotAuthenticated}))
		err := svc.Send(context.Background(), "ada@contoso.com", req)

		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.False(t, called)
	})
}
