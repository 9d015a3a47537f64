package router

import (
	"net/http"
	"office-graph-api/handler"

	_ "office-graph-api/docs"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(
	authHandler *handler.AuthHandler,
	mailHandler *handler.MailHandler,
	textHandler *handler.TextHandler,
	documentHandler *handler.DocumentHandler,
	sessions handler.ISessionParser,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(handler.LoggingMiddleware)

	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/ping", handler.Ping).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Public routes
	r.Handle("/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login)).Methods(http.MethodGet)
	r.Handle("/auth/callback", handler.ErrorHandlingMiddleware(authHandler.Callback)).Methods(http.MethodGet)
	r.Handle("/files/{name}", handler.ErrorHandlingMiddleware(documentHandler.ServeFile)).Methods(http.MethodGet)

	// Routes acting on behalf of the signed-in user
	protected := r.NewRoute().Subrouter()
	protected.Use(handler.AuthMiddleware(sessions))

	protected.Handle("/auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout)).Methods(http.MethodPost)
	protected.Handle("/send-email", handler.ErrorHandlingMiddleware(mailHandler.SendEmail)).Methods(http.MethodPost)
	protected.Handle("/generate-text", handler.ErrorHandlingMiddleware(textHandler.GenerateText)).Methods(http.MethodPost)
	protected.Handle("/generate-document", handler.ErrorHandlingMiddleware(documentHandler.GenerateDocument)).Methods(http.MethodPost)
	protected.Handle("/generate-ppt", handler.ErrorHandlingMiddleware(documentHandler.GeneratePresentation)).Methods(http.MethodGet)
	protected.Handle("/generate-doc", handler.ErrorHandlingMiddleware(documentHandler.GenerateWordDocument)).Methods(http.MethodGet)
	protected.Handle("/generate-excel", handler.ErrorHandlingMiddleware(documentHandler.GenerateSpreadsheet)).Methods(http.MethodGet)
	protected.Handle("/generate-file", handler.ErrorHandlingMiddleware(documentHandler.GenerateFile)).Methods(http.MethodPost)
	protected.Handle("/download-file", handler.ErrorHandlingMiddleware(documentHandler.DownloadFile)).Methods(http.MethodGet)

	return r
}
