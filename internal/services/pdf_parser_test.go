package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-prep/internal/config"
)

// singlePagePDF renders a minimal one-page PDF showing text in Helvetica.
func singlePagePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestTextExtractorReadsPDF(t *testing.T) {
	extractor := NewTextExtractor(5*1024*1024, []string{config.MediaTypePDF})
	data := singlePagePDF("Jane Doe Senior Go Engineer")

	extracted, err := extractor.Extract(data, config.MediaTypePDF)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Senior Go Engineer", extracted.Content)
	assert.Equal(t, 1, extracted.PageCount)
	assert.Equal(t, len(data), extracted.SourceLength)
}

func TestTextExtractorRejectsUnsupportedType(t *testing.T) {
	extractor := NewTextExtractor(5*1024*1024, []string{config.MediaTypePDF})

	_, err := extractor.Extract([]byte("\x89PNG\r\n"), "image/png")
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Contains(t, err.Error(), "image/png")
}

func TestTextExtractorRejectsOversizedDocument(t *testing.T) {
	extractor := NewTextExtractor(1024, []string{config.MediaTypePDF})

	_, err := extractor.Extract(bytes.Repeat([]byte("a"), 1025), config.MediaTypePDF)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Contains(t, err.Error(), "limit is 1024 bytes")
}

func TestTextExtractorRejectsEmptyDocument(t *testing.T) {
	extractor := NewTextExtractor(1024, []string{config.MediaTypePDF})

	_, err := extractor.Extract(nil, config.MediaTypePDF)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestTextExtractorReportsCorruptedPDF(t *testing.T) {
	extractor := NewTextExtractor(1024, []string{config.MediaTypePDF})

	_, err := extractor.Extract([]byte("definitely not a pdf document"), config.MediaTypePDF)
	require.Error(t, err)
	assert.Equal(t, KindExtractionFailure, KindOf(err))
}

func TestTextExtractorReportsCorruptedDOCX(t *testing.T) {
	extractor := NewTextExtractor(1024, []string{config.MediaTypePDF, config.MediaTypeDOCX})

	_, err := extractor.Extract([]byte("PK but not really a zip"), config.MediaTypeDOCX)
	require.Error(t, err)
	assert.Equal(t, KindExtractionFailure, KindOf(err))
}

func TestCleanText(t *testing.T) {
	in := "  Jane Doe  \n\n\n   Senior Engineer\n\t\n Go, Postgres \n"
	assert.Equal(t, "Jane Doe\n\nSenior Engineer\n\nGo, Postgres", CleanText(in))
}
