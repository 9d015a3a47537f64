// file: model/document.go

package model

import "strings"

// Format identifies an office document type by its file extension.
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

var formatAliases = map[string]Format{
	"pptx":  FormatPPTX,
	"ppt":   FormatPPTX,
	"docx":  FormatDOCX,
	"doc":   FormatDOCX,
	"xlsx":  FormatXLSX,
	"excel": FormatXLSX,
}

// ParseFormat maps a requested format or its short alias onto a Format.
func ParseFormat(s string) (Format, bool) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// Kind is the human name used as the file name prefix.
func (f Format) Kind() string {
	switch f {
	case FormatPPTX:
		return "presentation"
	case FormatDOCX:
		return "document"
	case FormatXLSX:
		return "spreadsheet"
	}
	return "file"
}

var contentTypes = map[Format]string{
	FormatPPTX: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentType is the MIME type served for files of this format.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Section is one titled block of content: a slide, a heading with its
// paragraphs, or a spreadsheet row.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Document is the format-independent content handed to an emitter.
type Document struct {
	Title    string
	Sections []Section
}
