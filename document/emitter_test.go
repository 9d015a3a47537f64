package document

import (
	"archive/zip"
	"bytes"
	"io"
	"office-graph-api/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }

func sampleDocument() model.Document {
	return model.Document{
		Title: "Q3 Review & Plan",
		Sections: []model.Section{
			{Title: "Revenue", Body: "Up 12%\r\nDriven by <enterprise> deals"},
			{Title: "", Body: "Untitled section body"},
		},
	}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = string(b)
	}
	return files
}

func TestDOCX_Emit(t *testing.T) {
	var buf bytes.Buffer
	err := DOCX{}.Emit(&buf, sampleDocument())
	require.NoError(t, err)

	files := readZip(t, buf.Bytes())
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
		assert.Contains(t, files, name)
	}

	doc := files["word/document.xml"]
	assert.Contains(t, doc, `w:val="Title"`)
	assert.Contains(t, doc, ">Q3 Review &amp; Plan<")
	assert.Contains(t, doc, ">Revenue<")
	assert.Contains(t, doc, ">Up 12%<")
	assert.Contains(t, doc, ">Driven by &lt;enterprise&gt; deals<")
	assert.Contains(t, doc, ">Untitled section body<")
	assert.Equal(t, 1, bytes.Count([]byte(doc), []byte(`w:val="Heading1"`)))

	// Title comes before the section heading, which comes before its body.
	title := bytes.Index([]byte(doc), []byte(">Q3 Review &amp; Plan<"))
	heading := bytes.Index([]byte(doc), []byte(">Revenue<"))
	body := bytes.Index([]byte(doc), []byte(">Up 12%<"))
	assert.True(t, title < heading && heading < body)
}

func TestPPTX_Emit(t *testing.T) {
	var buf bytes.Buffer
	err := PPTX{Now: fixedNow}.Emit(&buf, sampleDocument())
	require.NoError(t, err)

	files := readZip(t, buf.Bytes())
	for _, name := range []string{
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
	} {
		assert.Contains(t, files, name)
	}
	assert.NotContains(t, files, "ppt/slides/slide4.xml")

	assert.Contains(t, files["[Content_Types].xml"], `PartName="/ppt/slides/slide3.xml"`)
	assert.Contains(t, files["ppt/presentation.xml"], `<p:sldId id="258" r:id="rId5"/>`)
	assert.Contains(t, files["ppt/_rels/presentation.xml.rels"], `Id="rId5"`)

	titleSlide := files["ppt/slides/slide1.xml"]
	assert.Contains(t, titleSlide, "<a:t>Q3 Review &amp; Plan</a:t>")
	assert.NotContains(t, titleSlide, `<p:ph idx="1"/>`)

	first := files["ppt/slides/slide2.xml"]
	assert.Contains(t, first, "<a:t>Revenue</a:t>")
	assert.Contains(t, first, "<a:t>Up 12%</a:t></a:r></a:p><a:p><a:r><a:rPr lang=\"en-US\" dirty=\"0\"/><a:t>Driven by &lt;enterprise&gt; deals</a:t>")

	// Untitled sections fall back to the document title.
	second := files["ppt/slides/slide3.xml"]
	assert.Contains(t, second, "<a:t>Q3 Review &amp; Plan</a:t>")
	assert.Contains(t, second, "<a:t>Untitled section body</a:t>")
}

func TestXLSX_Emit(t *testing.T) {
	var buf bytes.Buffer
	err := XLSX{}.Emit(&buf, sampleDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Title", "Body"}, rows[0])
	assert.Equal(t, []string{"Revenue", "Up 12%\nDriven by <enterprise> deals"}, rows[1])
	assert.Equal(t, []string{"", "Untitled section body"}, rows[2])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Q3 Review & Plan", props.Title)
}

func TestXLSX_EmitNoSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.Emit(&buf, model.Document{Title: "Empty"}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Title", "Body"}}, rows)
}

func TestEmitters_CoverEveryFormat(t *testing.T) {
	emitters := Emitters()
	for _, f := range []model.Format{model.FormatPPTX, model.FormatDOCX, model.FormatXLSX} {
		assert.Contains(t, emitters, f)
	}
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, lines("\na\r\n\r\nb\n"))
	assert.Equal(t, []string{""}, lines(""))
}
