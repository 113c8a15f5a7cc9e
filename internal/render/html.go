package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const digestTemplate = `<html><head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto;">
<div style="background: #667eea; padding: 30px; border-radius: 10px; color: white; text-align: center;">
  <h1 style="margin: 0; font-size: 28px;">Daily News Digest</h1>
  <p style="margin: 10px 0 0 0; font-size: 14px;">{{.Date}}</p>
</div>
{{range .Sections}}
<div style="margin-top: 30px;">
  <h2 style="color: {{.Accent}}; border-bottom: 3px solid {{.Accent}}; padding-bottom: 10px;">{{.Title}}</h2>
  {{range .Entries}}
  <div style="margin-bottom: 20px; padding: 15px; background-color: #f8f9ff; border-left: 4px solid {{$.LinkColor}}; border-radius: 5px;">
    <p style="margin: 0 0 8px 0; font-weight: bold; font-size: 15px; color: #333;">{{.Number}}. {{.Title}}</p>
    <p style="margin: 8px 0 10px 0; font-size: 12px; color: #666;">{{.Date}} | {{.Source}}</p>
    {{if .Description}}<p style="margin: 0 0 10px 0; font-size: 13px; color: #444;">{{.Description}}</p>{{end}}
    {{if .HasLink}}<p style="margin: 0;"><a href="{{.URL}}" style="color: {{$.LinkColor}}; text-decoration: none; font-weight: bold;">Read full article</a></p>{{end}}
  </div>
  {{end}}
</div>
{{end}}
<div style="margin-top: 40px; padding: 20px; background-color: #f0f0f0; border-radius: 10px; text-align: center;">
  <p style="margin: 0; font-size: 12px; color: #666;">This digest was generated automatically.</p>
</div>
</body></html>`

// HTMLRenderer produces the self-contained digest document for one run.
type HTMLRenderer struct {
	tmpl *template.Template
}

var _ ports.DigestRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer parses the built-in digest template.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("digest").Parse(digestTemplate))}
}

type digestView struct {
	Date      string
	LinkColor string
	Sections  []sectionView
}

type sectionView struct {
	Title   string
	Accent  string
	Entries []entryView
}

type entryView struct {
	Number      int
	Title       string
	URL         string
	HasLink     bool
	Source      string
	Date        string
	Description string
}

var accents = map[domain.Category]string{
	domain.CategorySemiconductor: "#667eea",
	domain.CategoryMacroeconomy:  "#ff6b6b",
}

// Render builds the HTML digest. Sections follow the fixed category
// order; records without a real link are rendered without an anchor.
func (r *HTMLRenderer) Render(articles map[domain.Category][]domain.Article, day time.Time) (string, error) {
	view := digestView{
		Date:      day.Format("2006-01-02"),
		LinkColor: "#667eea",
	}

	for _, category := range domain.Categories {
		records, ok := articles[category]
		if !ok {
			continue
		}

		section := sectionView{
			Title:  category.Title(),
			Accent: accentFor(category),
		}
		for i, record := range records {
			section.Entries = append(section.Entries, entryView{
				Number:      i + 1,
				Title:       record.Title,
				URL:         record.URL,
				HasLink:     record.HasLink(),
				Source:      record.Source,
				Date:        record.RetrievedAt.Format("2006-01-02"),
				Description: record.Description,
			})
		}
		view.Sections = append(view.Sections, section)
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("execute digest template: %w", err)
	}
	return sb.String(), nil
}

func accentFor(category domain.Category) string {
	if accent, ok := accents[category]; ok {
		return accent
	}
	return "#667eea"
}
