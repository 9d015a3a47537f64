package document

import (
	"fmt"
	"io"
	"office-graph-api/model"

	"github.com/gomutex/godocx"
)

// DOCX renders a Word document: the title as a Title paragraph, then each
// section as a Heading1 followed by its body lines.
type DOCX struct{}

func (DOCX) Emit(w io.Writer, doc model.Document) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	if _, err := d.AddHeading(doc.Title, 0); err != nil {
		return fmt.Errorf("adding title: %w", err)
	}
	for _, s := range doc.Sections {
		if s.Title != "" {
			if _, err := d.AddHeading(s.Title, 1); err != nil {
				return fmt.Errorf("adding heading %q: %w", s.Title, err)
			}
		}
		for _, line := range lines(s.Body) {
			d.AddParagraph(line)
		}
	}

	if err := d.Write(w); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
