package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// MarkdownToHTML converte o texto das recomendações para HTML
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
