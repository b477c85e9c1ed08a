// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns a page's ordered block sequence into a complete
// HTML document. Rendering is a pure function of the content array, the
// registry, and the site context: stored data is never mutated, block
// order always matches array order, and a block whose type is missing
// from the registry is skipped with a warning instead of aborting the page.
package render

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/blocks"
	"siteforge/internal/models"
	"siteforge/internal/theme"
)

// Mode selects which content variant of a page is rendered.
type Mode string

const (
	// ModePublished serves the last published snapshot (public routes).
	ModePublished Mode = "published"
	// ModeDraft serves the live draft (preview and editor routes).
	ModeDraft Mode = "draft"
)

// SiteContext is the per-site data injected into every block render so
// interactive blocks can address the right tenant.
type SiteContext struct {
	SiteID     uuid.UUID
	SiteName   string
	Theme      theme.Tokens
	Navigation []theme.NavItem
	HeadCode   string
	BodyCode   string
}

// SiteContextFor builds the render context from a site record.
func SiteContextFor(site *models.Site) SiteContext {
	ctx := SiteContext{
		SiteID:     site.ID,
		SiteName:   site.Name,
		Theme:      theme.Resolve(site.Styles),
		Navigation: theme.ResolveNavigation(site.Navigation),
	}
	if site.HeadCode != nil {
		ctx.HeadCode = *site.HeadCode
	}
	if site.BodyCode != nil {
		ctx.BodyCode = *site.BodyCode
	}
	return ctx
}

// Renderer renders block content against a fixed registry. The registry is
// immutable after startup, so a Renderer is safe for concurrent use.
type Renderer struct {
	registry *blocks.Registry
}

// New creates a renderer over the given block registry.
func New(registry *blocks.Registry) *Renderer {
	return &Renderer{registry: registry}
}

// RenderBlocks renders the ordered block sequence into an HTML fragment.
// Hidden blocks and unresolvable types are skipped; one bad block never
// aborts the rest of the page.
func (r *Renderer) RenderBlocks(content models.Blocks, site SiteContext) []byte {
	var buf bytes.Buffer
	for i := range content {
		block := &content[i]
		if !block.IsVisible() {
			continue
		}

		def, ok := r.registry.Resolve(block.Type)
		if !ok {
			slog.Warn("skipping unregistered block type",
				"type", block.Type,
				"block_id", block.ID,
				"site_id", site.SiteID,
			)
			continue
		}

		payload := struct {
			Data map[string]any
			Site SiteContext
		}{
			Data: def.ApplyDefaults(block.Data),
			Site: site,
		}

		var blockBuf bytes.Buffer
		if err := def.Execute(&blockBuf, payload); err != nil {
			slog.Warn("block render failed, skipping",
				"type", block.Type,
				"block_id", block.ID,
				"error", err,
			)
			continue
		}
		buf.Write(blockBuf.Bytes())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// RenderPage renders the complete HTML document for a page in the given
// mode. Absent content (a never-published page on a public route, or a
// page with no draft) renders the coming-soon placeholder body.
func (r *Renderer) RenderPage(site *models.Site, page *models.Page, mode Mode) []byte {
	siteCtx := SiteContextFor(site)

	content, present := chooseContent(page, mode)
	var body []byte
	if !present {
		body = comingSoonBody(siteCtx.SiteName)
	} else {
		body = r.RenderBlocks(content, siteCtx)
	}

	return r.document(siteCtx, page, body)
}

// chooseContent picks the content variant for the mode. The second return
// reports whether the variant exists at all: a published empty array is
// present (renders an empty page), a never-published page is not.
func chooseContent(page *models.Page, mode Mode) (models.Blocks, bool) {
	if mode == ModeDraft {
		return page.DraftContent, page.DraftContent != nil
	}
	if !page.IsPublished() {
		return nil, false
	}
	return page.PublishedContent, true
}

// document wraps a rendered body fragment in the page chrome: head with
// SEO metadata and theme CSS, navigation, and site-level injected code.
func (r *Renderer) document(site SiteContext, page *models.Page, body []byte) []byte {
	title := site.SiteName
	if page != nil {
		if page.SEOTitle != nil && *page.SEOTitle != "" {
			title = *page.SEOTitle
		} else if page.Name != "" {
			title = fmt.Sprintf("%s — %s", page.Name, site.SiteName)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	if page != nil {
		writeMeta(&buf, "description", page.SEODescription)
		writeMeta(&buf, "keywords", page.SEOKeywords)
		if page.SEOImage != nil && *page.SEOImage != "" {
			fmt.Fprintf(&buf, `<meta property="og:image" content="%s">`+"\n", html.EscapeString(*page.SEOImage))
		}
	}
	fmt.Fprintf(&buf, "<style>%s%s</style>\n", site.Theme.CSS(), baseCSS)
	// Site-level head injection is trusted owner-supplied markup.
	if site.HeadCode != "" {
		buf.WriteString(site.HeadCode)
		buf.WriteByte('\n')
	}
	buf.WriteString("</head>\n<body>\n")

	r.writeNav(&buf, site)
	buf.WriteString(`<main class="sf-main">` + "\n")
	buf.Write(body)
	buf.WriteString("</main>\n")
	fmt.Fprintf(&buf, `<footer class="sf-footer"><p>&copy; %d %s</p></footer>`+"\n",
		time.Now().Year(), html.EscapeString(site.SiteName))

	if site.BodyCode != "" {
		buf.WriteString(site.BodyCode)
		buf.WriteByte('\n')
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

// writeMeta writes one optional meta tag.
func writeMeta(buf *bytes.Buffer, name string, value *string) {
	if value == nil || *value == "" {
		return
	}
	fmt.Fprintf(buf, `<meta name="%s" content="%s">`+"\n", name, html.EscapeString(*value))
}

// writeNav renders the site navigation chrome.
func (r *Renderer) writeNav(buf *bytes.Buffer, site SiteContext) {
	buf.WriteString(`<header class="sf-header"><nav class="sf-nav">`)
	fmt.Fprintf(buf, `<a class="sf-brand" href="/">%s</a>`, html.EscapeString(site.SiteName))
	for _, item := range site.Navigation {
		attrs := ""
		if item.External {
			attrs = fmt.Sprintf(` target="%s" rel="%s"`, item.Target, item.Rel)
		}
		fmt.Fprintf(buf, `<a href="%s"%s>%s</a>`,
			html.EscapeString(item.Href), attrs, html.EscapeString(item.Label))
	}
	buf.WriteString("</nav></header>\n")
}

// ComingSoon renders the full placeholder document for a site whose target
// page has no content yet.
func (r *Renderer) ComingSoon(site *models.Site) []byte {
	siteCtx := SiteContextFor(site)
	return r.document(siteCtx, nil, comingSoonBody(siteCtx.SiteName))
}

func comingSoonBody(siteName string) []byte {
	return fmt.Appendf(nil, `<section class="sf-block sf-coming-soon">
<h1>Coming Soon</h1>
<p>%s is almost ready.</p>
</section>
`, html.EscapeString(siteName))
}

// NotFound is the body served when no site or page matches the request.
func NotFound() []byte {
	return []byte(`<!DOCTYPE html>
<html><head><title>Not Found</title></head>
<body><h1>404</h1><p>There is no site here.</p></body></html>
`)
}

// Suspended is the body served for banned sites, distinct from not-found.
func Suspended() []byte {
	return []byte(`<!DOCTYPE html>
<html><head><title>Site Suspended</title></head>
<body><h1>Site suspended</h1><p>This site is currently unavailable.</p></body></html>
`)
}

// baseCSS is the minimal structural stylesheet shared by all sites; the
// per-site look comes from the theme custom properties.
const baseCSS = `
body{margin:0;font-family:var(--sf-font);background:var(--sf-bg);color:var(--sf-text)}
.sf-nav{display:flex;gap:1.5rem;align-items:center;padding:1rem 2rem}
.sf-nav a{color:var(--sf-text);text-decoration:none}
.sf-brand{font-weight:700}
.sf-main{max-width:72rem;margin:0 auto;padding:0 2rem}
.sf-block{padding:3rem 0}
.sf-button{display:inline-block;background:var(--sf-primary);color:var(--sf-primary-fg);padding:.75rem 1.5rem;border-radius:var(--sf-radius);text-decoration:none;border:0}
.sf-hero-center{text-align:center}
.sf-features-grid,.sf-pricing-grid,.sf-testimonials-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(16rem,1fr));gap:1.5rem}
.sf-tier,.sf-feature,.sf-testimonial{border:1px solid #e5e7eb;border-radius:var(--sf-radius);padding:1.5rem}
.sf-tier-highlighted{border-color:var(--sf-primary)}
.sf-footer{text-align:center;padding:2rem;opacity:.7}
.sf-coming-soon{text-align:center;padding:6rem 0}
`
