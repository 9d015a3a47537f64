package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"office-graph-api/common"
	"office-graph-api/logger"
	"office-graph-api/model"
	"office-graph-api/service"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const untitled = "Untitled"

type DocumentHandler struct {
	docs    *service.DocumentService
	drive   *service.DriveService
	baseURL string
}

func NewDocumentHandler(docs *service.DocumentService, drive *service.DriveService, baseURL string) *DocumentHandler {
	return &DocumentHandler{
		docs:    docs,
		drive:   drive,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateDocument godoc
// @Summary      Generate an office document
// @Description  Builds a pptx, docx or xlsx file from sections, a body, or text generated from a prompt.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.GenerateDocumentRequest  true  "Document content"
// @Success      201      {object}  model.DocumentResponse
// @Failure      400      {object}  common.AppError
// @Router       /generate-document [post]
func (h *DocumentHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GenerateDocumentRequest
	if appErr := common.Decode(r, &req); appErr != nil {
		return appErr
	}

	// An unknown format is reported ahead of missing fields.
	format, err := h.docs.ResolveFormat(req.Format)
	if err != nil && req.Format != "" {
		return serviceError(err)
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return appErr
	}

	email, appErr := userEmail(r)
	if appErr != nil {
		return appErr
	}
	logger.Log.WithFields(logrus.Fields{
		"email":  email,
		"format": format,
	}).Info("Generate document request received")

	doc, err := h.docs.Compose(r.Context(), req.Title, req.Body, req.Prompt, req.Sections)
	if err != nil {
		return serviceError(err)
	}

	file, err := h.docs.Generate(format, doc)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusCreated, model.DocumentResponse{
		FileName:    file.Name,
		Format:      file.Format,
		DownloadURL: h.baseURL + "/files/" + url.PathEscape(file.Name),
	})
	return nil
}

// GeneratePresentation godoc
// @Summary      Generate and download a presentation
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Security     BearerAuth
// @Param        title   query  string  false  "Title"
// @Param        body    query  string  false  "Body text"
// @Param        prompt  query  string  false  "Prompt used when body is empty"
// @Success      200
// @Router       /generate-ppt [get]
func (h *DocumentHandler) GeneratePresentation(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.generateAndServe(w, r, model.FormatPPTX)
}

// GenerateWordDocument godoc
// @Summary      Generate and download a Word document
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Security     BearerAuth
// @Param        title   query  string  false  "Title"
// @Param        body    query  string  false  "Body text"
// @Param        prompt  query  string  false  "Prompt used when body is empty"
// @Success      200
// @Router       /generate-doc [get]
func (h *DocumentHandler) GenerateWordDocument(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.generateAndServe(w, r, model.FormatDOCX)
}

// GenerateSpreadsheet godoc
// @Summary      Generate and download a spreadsheet
// @Tags         documents
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        title   query  string  false  "Title"
// @Param        body    query  string  false  "Body text"
// @Param        prompt  query  string  false  "Prompt used when body is empty"
// @Success      200
// @Router       /generate-excel [get]
func (h *DocumentHandler) GenerateSpreadsheet(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.generateAndServe(w, r, model.FormatXLSX)
}

func (h *DocumentHandler) generateAndServe(w http.ResponseWriter, r *http.Request, format model.Format) *common.AppError {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	if title == "" {
		title = untitled
	}

	doc, err := h.docs.Compose(r.Context(), title, q.Get("body"), q.Get("prompt"), nil)
	if err != nil {
		return serviceError(err)
	}

	file, err := h.docs.Generate(format, doc)
	if err != nil {
		return serviceError(err)
	}
	return serveFile(w, r, file)
}

// GenerateFile godoc
// @Summary      Generate a file and upload it to OneDrive
// @Description  Builds the file from the given sections and stores it in the caller's OneDrive root.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.GenerateFileRequest  true  "File content"
// @Success      200      {object}  model.UploadResponse
// @Failure      400      {object}  common.AppError
// @Router       /generate-file [post]
func (h *DocumentHandler) GenerateFile(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.GenerateFileRequest
	if appErr := common.Decode(r, &req); appErr != nil {
		return appErr
	}
	if req.FileType == "" {
		req.FileType = "ppt"
	}

	format, err := h.docs.ResolveFormat(req.FileType)
	if err != nil {
		return serviceError(err)
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return appErr
	}

	email, appErr := userEmail(r)
	if appErr != nil {
		return appErr
	}

	title := req.Title
	if title == "" {
		title = untitled
	}
	name, content, err := h.docs.Render(format, model.Document{Title: title, Sections: req.Content})
	if err != nil {
		return serviceError(err)
	}

	webURL, err := h.drive.Upload(r.Context(), email, name, content)
	if err != nil {
		return serviceError(err)
	}

	common.WriteJSON(w, http.StatusOK, model.UploadResponse{
		Message: "File uploaded successfully",
		FileURL: webURL,
	})
	return nil
}

// DownloadFile godoc
// @Summary      Download the latest generated file of a type
// @Tags         documents
// @Security     BearerAuth
// @Param        file_type  query  string  false  "ppt, doc or excel"  default(ppt)
// @Success      200
// @Failure      404  {object}  common.AppError
// @Router       /download-file [get]
func (h *DocumentHandler) DownloadFile(w http.ResponseWriter, r *http.Request) *common.AppError {
	fileType := r.URL.Query().Get("file_type")
	if fileType == "" {
		fileType = "ppt"
	}

	format, err := h.docs.ResolveFormat(fileType)
	if err != nil {
		return serviceError(err)
	}

	file, err := h.docs.Latest(format)
	if err != nil {
		return serviceError(err)
	}
	return serveFile(w, r, file)
}

// ServeFile godoc
// @Summary      Download a generated file
// @Tags         documents
// @Param        name  path  string  true  "File name"
// @Success      200
// @Failure      404  {object}  common.AppError
// @Router       /files/{name} [get]
func (h *DocumentHandler) ServeFile(w http.ResponseWriter, r *http.Request) *common.AppError {
	file, err := h.docs.Lookup(mux.Vars(r)["name"])
	if err != nil {
		return serviceError(err)
	}
	return serveFile(w, r, file)
}

func serveFile(w http.ResponseWriter, r *http.Request, file *service.GeneratedFile) *common.AppError {
	f, err := os.Open(file.Path)
	if err != nil {
		return common.NewAppError(http.StatusNotFound, "File not found", nil)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not read file", err)
	}

	w.Header().Set("Content-Type", file.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	http.ServeContent(w, r, file.Name, info.ModTime(), f)
	return nil
}
