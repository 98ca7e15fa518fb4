package candidate

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/artem13815/jobboard/pkg/apperr"
)

var (
	reXMLTags    = regexp.MustCompile(`<[^>]+>`)
	reHorizontal = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines   = regexp.MustCompile(`\n+`)
)

// ResumeExt возвращает расширение поддерживаемого резюме в нижнем регистре.
func ResumeExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".docx" {
		return "", apperr.Invalid("unsupported file format: only pdf and docx are allowed")
	}
	return ext, nil
}

// ParseResumeText достаёт текст из резюме .pdf или .docx.
func ParseResumeText(filename string, data []byte) (string, error) {
	ext, err := ResumeExt(filename)
	if err != nil {
		return "", err
	}
	var text string
	switch ext {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	}
	if err != nil {
		return "", &apperr.Error{Kind: apperr.KindInvalidArgument, Msg: "failed to read resume", Err: err}
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return collapseWhitespace(buf.String()), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		xml := strings.ReplaceAll(string(raw), "</w:p>", "\n")
		xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
		return collapseWhitespace(reXMLTags.ReplaceAllString(xml, " ")), nil
	}
	return "", fmt.Errorf("docx: word/document.xml not found")
}

// collapseWhitespace сохраняет переводы строк, остальные пробелы схлопывает.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reHorizontal.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " \n", "\n")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
