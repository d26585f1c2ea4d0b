package services

import (
	"bytes"
	"fmt"
	"html"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	ParserPDF     = "pdf"
	ParserDOCX    = "docx"
	ParserText    = "text"
	ParserUnknown = "unknown"

	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

type TextExtractor interface {
	Extract(file models.UploadedFile) models.ParseInfo
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract implements TextExtractor. Errors are reported in ParseInfo.Error and leave Text empty.
func (e *textExtractor) Extract(file models.UploadedFile) models.ParseInfo {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	info := models.ParseInfo{
		File: models.FileInfo{
			Name: file.Filename,
			Mime: file.MimeType,
			Ext:  ext,
		},
	}

	info.Parser = DetectParser(file.MimeType, ext, file.Data)

	var (
		text  string
		pages *int
		err   error
	)
	switch info.Parser {
	case ParserPDF:
		text, pages, err = extractPDF(file.Data)
	case ParserDOCX:
		text, err = extractDOCX(file.Data)
	case ParserText:
		text = strings.ToValidUTF8(string(file.Data), "�")
	default:
		err = fmt.Errorf("unsupported file type: %s", describeType(file.MimeType, ext))
	}

	if err != nil {
		msg := err.Error()
		info.Error = &msg
		log.Printf("⚠️  Extraction failed for %s (%s): %v", file.Filename, info.Parser, err)
		text = ""
	}

	info.Text = text
	info.Pages = pages
	info.TextLength = utf8.RuneCountInString(text)
	return info
}

// DetectParser picks a parser from the declared MIME type, then the extension, then magic bytes.
func DetectParser(mime, ext string, data []byte) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch {
	case mime == MimePDF:
		return ParserPDF
	case mime == MimeDOCX:
		return ParserDOCX
	case strings.HasPrefix(mime, "text/"):
		return ParserText
	}

	switch ext {
	case "pdf":
		return ParserPDF
	case "docx":
		return ParserDOCX
	case "txt", "md", "text":
		return ParserText
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return ParserPDF
	case bytes.HasPrefix(data, []byte("PK")):
		return ParserDOCX
	case len(data) > 0 && utf8.Valid(data) && !looksBinary(data):
		return ParserText
	}

	return ParserUnknown
}

func extractPDF(data []byte) (text string, pages *int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()
	pages = &totalPage

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// keep what the other pages give us
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", pages, fmt.Errorf("no text content found in PDF")
	}

	return text, pages, nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTagPattern.ReplaceAllString(content, "")

	text := CleanText(html.UnescapeString(content))
	if text == "" {
		return "", fmt.Errorf("no text content found in DOCX")
	}
	return text, nil
}

// CleanText trims every line and drops empty ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

func looksBinary(data []byte) bool {
	sample := data
	if len(sample) > 1000 {
		sample = sample[:1000]
	}
	nonPrintable := 0
	for _, ch := range sample {
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > 0.3
}

func describeType(mime, ext string) string {
	if mime != "" {
		return mime
	}
	if ext != "" {
		return "." + ext
	}
	return "unknown"
}
