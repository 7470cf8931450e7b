package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextFromFile(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText concatenates the plain text of every page in page order.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	text, _, err := extractPages(data)
	return text, err
}

func (p *pdfParserService) ExtractTextFromFile(filePath string) (*PDFContent, error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file does not exist: %s", ErrDocumentParse, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", ErrDocumentParse, err)
	}

	text, pageCount, err := extractPages(data)
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: pageCount,
		FilePath:  filePath,
	}, nil
}

func extractPages(data []byte) (text string, pageCount int, err error) {
	if len(data) == 0 {
		return "", 0, fmt.Errorf("%w: empty upload", ErrDocumentParse)
	}

	// The reader panics on some truncated xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, pageCount = "", 0
			err = fmt.Errorf("%w: malformed PDF: %v", ErrDocumentParse, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: failed to open PDF: %v", ErrDocumentParse, err)
	}

	var textBuilder strings.Builder
	pageCount = r.NumPage()

	for pageIndex := 1; pageIndex <= pageCount; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(pageText)
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", pageCount, fmt.Errorf("%w: no text content found in PDF", ErrDocumentParse)
	}

	return text, pageCount, nil
}
