package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Markdown wraps markdown source and renders it to sanitized HTML on demand.
type Markdown struct {
	// Source is the markdown source code.
	Source string

	once         sync.Once
	renderedHTML template.HTML
}

var (
	bfRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes,
	})
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Tables | blackfriday.FencedCode | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.DefinitionLists
	policy       = bluemonday.UGCPolicy()
)

func NewMarkdown(source string) *Markdown {
	return &Markdown{Source: source}
}

// Load reads a markdown document from fsys.
func Load(fsys fs.FS, path string) (*Markdown, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read markdown %s: %w", path, err)
	}
	return NewMarkdown(string(b)), nil
}

// Render converts the Markdown Source into sanitized HTML. The result is
// cached; Render is safe for concurrent use.
func (m *Markdown) Render() template.HTML {
	m.once.Do(func() {
		if m.Source == "" {
			return
		}
		unsafe := blackfriday.Run([]byte(m.Source),
			blackfriday.WithRenderer(bfRenderer),
			blackfriday.WithExtensions(bfExtensions),
		)
		m.renderedHTML = template.HTML(bytes.TrimSpace(policy.SanitizeBytes(unsafe)))
	})
	return m.renderedHTML
}
