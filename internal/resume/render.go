package resume

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"devb-web/internal/model"
)

//go:embed templates/resume.html templates/style.css
var templateFS embed.FS

var resumeTemplate = template.Must(template.New("resume.html").ParseFS(templateFS, "templates/resume.html"))

// RenderHTML renders the resume as a standalone HTML page with the stylesheet
// inlined, ready for printing to PDF.
func RenderHTML(r *model.Resume) (string, error) {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := map[string]interface{}{
		"Resume": r,
		"CSS":    template.CSS(css),
	}
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render resume template: %w", err)
	}
	return buf.String(), nil
}

// FileName is the attachment name for a user's resume.
func FileName(username string) string {
	return strings.TrimSpace(username) + "-resume.pdf"
}
