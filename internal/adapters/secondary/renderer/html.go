// Package renderer produces the self-contained HTML preview page served by
// the local preview server. Slide markdown is converted with goldmark and
// sanitized before it reaches the template.
package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// HTMLRenderer renders a presentation into one self-contained preview page.
type HTMLRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	page      *template.Template
}

// NewHTMLRenderer creates a preview renderer.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)

	page := template.New("preview").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s) // #nosec G203 - content is sanitized before templating
		},
	})
	if _, err := page.Parse(previewPageTemplate); err != nil {
		return nil, fmt.Errorf("parsing preview template: %w", err)
	}

	return &HTMLRenderer{
		md:        md,
		sanitizer: createHTMLSanitizer(),
		page:      page,
	}, nil
}

type renderedSlide struct {
	Title     string
	HTML      string
	IsUpgrade bool
	Subslides []renderedSlide
}

// RenderPage renders the whole deck as one HTML document. Subslides become
// vertical sections nested inside their parent slide.
func (r *HTMLRenderer) RenderPage(presentation *entities.Presentation) ([]byte, error) {
	if presentation == nil {
		return nil, errors.New("presentation cannot be nil")
	}

	slides := presentation.Slides()
	rendered := make([]renderedSlide, 0, len(slides))
	for i, slide := range slides {
		rs, err := r.renderSlide(slide)
		if err != nil {
			return nil, fmt.Errorf("rendering slide %d: %w", i+1, err)
		}
		rendered = append(rendered, rs)
	}

	data := struct {
		Title      string
		SourceType string
		Slides     []renderedSlide
	}{
		Title:      presentation.Title(),
		SourceType: presentation.SourceType().String(),
		Slides:     rendered,
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing preview template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) renderSlide(slide entities.Slide) (renderedSlide, error) {
	html, err := r.renderMarkdown(slide.Content)
	if err != nil {
		return renderedSlide{}, err
	}

	out := renderedSlide{
		Title:     slide.Title,
		HTML:      html,
		IsUpgrade: slide.IsUpgrade(),
	}
	for _, sub := range slide.Subslides {
		subRendered, err := r.renderSlide(sub)
		if err != nil {
			return renderedSlide{}, err
		}
		out.Subslides = append(out.Subslides, subRendered)
	}
	return out, nil
}

func (r *HTMLRenderer) renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

// createHTMLSanitizer creates a restrictive HTML sanitizer for slide content
func createHTMLSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	// Allow basic text formatting
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("p", "br", "hr")
	p.AllowElements("strong", "b", "em", "i", "u", "s", "mark", "del")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("a").AllowAttrs("href").OnElements("a")
	p.AllowElements("img").AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowElements("div", "span").AllowAttrs("class").OnElements("div", "span")

	// Allow safe attributes
	p.AllowAttrs("class", "id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "span")
	// Fence language classes survive sanitization so the preview can style code
	p.AllowAttrs("class").OnElements("code")
	p.AllowURLSchemes("http", "https")

	return p
}

const previewPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; background: #1a1a2e; }
        .deck { position: relative; width: 100vw; height: 100vh; overflow: hidden; }
        .slide { display: none; width: 100%; height: 100%; box-sizing: border-box; padding: 4em; background: #fff; overflow-y: auto; }
        .slide.active { display: block; }
        .slide h1 { font-size: 2.5em; color: #2c3e50; }
        .slide h2 { font-size: 2em; color: #34495e; }
        .slide h3 { font-size: 1.5em; color: #34495e; }
        .slide pre { background: #f4f4f4; padding: 1em; border-radius: 4px; overflow-x: auto; }
        .slide code { background: #f4f4f4; padding: 0.2em 0.4em; border-radius: 3px; }
        .slide blockquote { border-left: 4px solid #ddd; padding-left: 1em; color: #666; }
        .slide table { border-collapse: collapse; width: 100%; }
        .slide table th, .slide table td { border: 1px solid #ddd; padding: 0.5em; }
        .slide img { max-width: 100%; }
        .slide.upgrade { background: #fdf6e3; }
        .subslide { border-top: 2px dashed #ccc; margin-top: 2em; padding-top: 2em; }
        .controls { position: fixed; bottom: 1em; right: 1em; z-index: 10; }
        .controls button { padding: 0.5em 1em; margin-left: 0.5em; }
        .slide-number { position: fixed; bottom: 1em; left: 1em; color: #888; z-index: 10; }
    </style>
</head>
<body>
    <div class="deck" data-source="{{.SourceType}}">
        {{range $index, $slide := .Slides}}
        <div class="slide{{if $slide.IsUpgrade}} upgrade{{end}}{{if eq $index 0}} active{{end}}" data-index="{{$index}}">
            {{$slide.HTML | safeHTML}}
            {{range $sub := $slide.Subslides}}
            <section class="subslide">
                {{$sub.HTML | safeHTML}}
            </section>
            {{end}}
        </div>
        {{end}}

        <div class="controls">
            <button id="prev">Previous</button>
            <button id="next">Next</button>
        </div>
        <div class="slide-number">
            <span id="current-slide">1</span> / <span id="total-slides">{{len .Slides}}</span>
        </div>
    </div>

    <script>
        (function () {
            var slides = document.querySelectorAll('.slide');
            var current = 0;
            function show(index) {
                if (index < 0 || index >= slides.length) return;
                slides[current].classList.remove('active');
                current = index;
                slides[current].classList.add('active');
                document.getElementById('current-slide').textContent = current + 1;
            }
            document.getElementById('next').addEventListener('click', function () { show(current + 1); });
            document.getElementById('prev').addEventListener('click', function () { show(current - 1); });
            document.addEventListener('keydown', function (e) {
                if (e.key === 'ArrowRight' || e.key === ' ') show(current + 1);
                if (e.key === 'ArrowLeft') show(current - 1);
            });
            if (window.WebSocket) {
                var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
                var sock = new WebSocket(proto + location.host + '/ws');
                sock.onmessage = function (msg) {
                    var event;
                    try { event = JSON.parse(msg.data); } catch (e) { return; }
                    if (event.type === 'reload') location.reload();
                    if (event.type === 'error') console.error('decksmith:', event.data && event.data.message);
                };
            }
        })();
    </script>
</body>
</html>`

// Ensure HTMLRenderer implements ports.PreviewRenderer
var _ ports.PreviewRenderer = (*HTMLRenderer)(nil)
