package services

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/interview-prep/internal/config"
)

type TextExtractor interface {
	Extract(data []byte, mediaType string) (*ExtractedText, error)
}

type ExtractedText struct {
	Content      string
	SourceLength int
	PageCount    int
}

type textExtractor struct {
	maxFileSize int64
	accepted    []string
}

// NewTextExtractor accepts documents up to maxFileSize bytes whose media
// type is one of accepted.
func NewTextExtractor(maxFileSize int64, accepted []string) TextExtractor {
	return &textExtractor{
		maxFileSize: maxFileSize,
		accepted:    accepted,
	}
}

func (e *textExtractor) Extract(data []byte, mediaType string) (*ExtractedText, error) {
	if !containsString(e.accepted, mediaType) {
		return nil, invalidInput("unsupported document type %q, accepted: %s", mediaType, strings.Join(e.accepted, ", "))
	}
	if len(data) == 0 {
		return nil, invalidInput("document is empty")
	}
	if int64(len(data)) > e.maxFileSize {
		return nil, invalidInput("document is %d bytes, the limit is %d bytes", len(data), e.maxFileSize)
	}

	var (
		extracted *ExtractedText
		err       error
	)
	switch mediaType {
	case config.MediaTypePDF:
		extracted, err = extractPDF(data)
	case config.MediaTypeDOCX:
		extracted, err = extractDOCX(data)
	default:
		return nil, invalidInput("no extractor for document type %q", mediaType)
	}
	if err != nil {
		return nil, err
	}

	extracted.Content = CleanText(extracted.Content)
	extracted.SourceLength = len(data)
	if extracted.Content == "" {
		return nil, invalidInput("no text content found in document")
	}

	return extracted, nil
}

func extractPDF(data []byte) (extracted *ExtractedText, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			extracted = nil
			err = newError(KindExtractionFailure, "the PDF could not be read, it may be corrupted", fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, newError(KindExtractionFailure, "the PDF could not be opened, it may be corrupted or encrypted", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &ExtractedText{
		Content:   textBuilder.String(),
		PageCount: totalPage,
	}, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (*ExtractedText, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, newError(KindExtractionFailure, "the DOCX could not be opened, it may be corrupted", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTag.ReplaceAllString(content, "")

	return &ExtractedText{
		Content:   html.UnescapeString(content),
		PageCount: 1,
	}, nil
}

// CleanText trims every line and collapses runs of blank lines into a
// single paragraph break.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(cleanedLines) > 0 && cleanedLines[len(cleanedLines)-1] != "" {
				cleanedLines = append(cleanedLines, "")
			}
			continue
		}
		cleanedLines = append(cleanedLines, line)
	}

	return strings.TrimSpace(strings.Join(cleanedLines, "\n"))
}
