// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// builtin.go declares the built-in block type catalog. Every site is
// composed from these definitions; the registry makes adding a new type a
// matter of appending to this list.
package blocks

// Builtin returns the registry of all built-in block types, compiled and
// ready for rendering. Call once at process start.
func Builtin() (*Registry, error) {
	return New(
		heroDef, featuresDef, pricingDef, testimonialsDef, faqDef,
		ctaDef, imageDef, galleryDef, richTextDef, contactDef,
	)
}

var heroDef = &Definition{
	Type:        "hero",
	Name:        "Hero",
	Description: "Large headline with subtitle and call-to-action button.",
	Schema: `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1, "maxLength": 200},
			"subtitle": {"type": "string", "maxLength": 500},
			"buttonLabel": {"type": "string", "maxLength": 80},
			"buttonHref": {"type": "string", "maxLength": 2000},
			"layout": {"enum": ["left", "center"]}
		},
		"required": ["title"]
	}`,
	Defaults: map[string]any{
		"title":       "Welcome to our site",
		"subtitle":    "We are glad you are here.",
		"buttonLabel": "Get started",
		"buttonHref":  "#",
		"layout":      "center",
	},
	Template: `<section class="sf-block sf-hero sf-hero-{{.Data.layout}}">
<h1>{{.Data.title}}</h1>
{{if .Data.subtitle}}<p class="sf-hero-subtitle">{{.Data.subtitle}}</p>{{end}}
{{if .Data.buttonLabel}}<a class="sf-button" href="{{.Data.buttonHref}}">{{.Data.buttonLabel}}</a>{{end}}
</section>`,
}

var featuresDef = &Definition{
	Type:        "features",
	Name:        "Feature Grid",
	Description: "Grid of features, each with a title and short description.",
	Schema: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "maxLength": 200},
			"items": {
				"type": "array",
				"maxItems": 12,
				"items": {
					"type": "object",
					"properties": {
						"title": {"type": "string", "minLength": 1, "maxLength": 120},
						"text": {"type": "string", "maxLength": 600},
						"icon": {"type": "string", "maxLength": 80}
					},
					"required": ["title"]
				}
			}
		},
		"required": ["items"]
	}`,
	Defaults: map[string]any{
		"heading": "What we offer",
		"items": []any{
			map[string]any{"title": "Fast", "text": "Pages served from the edge."},
			map[string]any{"title": "Simple", "text": "Edit visually, publish in one click."},
			map[string]any{"title": "Yours", "text": "Your own domain, your own brand."},
		},
	},
	Template: `<section class="sf-block sf-features">
{{if .Data.heading}}<h2>{{.Data.heading}}</h2>{{end}}
<div class="sf-features-grid">
{{range .Data.items}}<div class="sf-feature">
<h3>{{.title}}</h3>
{{if .text}}<p>{{.text}}</p>{{end}}
</div>{{end}}
</div>
</section>`,
}

var pricingDef = &Definition{
	Type:        "pricing",
	Name:        "Pricing Table",
	Description: "Side-by-side pricing tiers with feature lists.",
	Schema: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "maxLength": 200},
			"tiers": {
				"type": "array",
				"minItems": 1,
				"maxItems": 5,
				"items": {
					"type": "object",
					"properties": {
						"name": {"type": "string", "minLength": 1, "maxLength": 80},
						"price": {"type": "string", "maxLength": 40},
						"period": {"type": "string", "maxLength": 40},
						"features": {"type": "array", "items": {"type": "string", "maxLength": 200}},
						"buttonLabel": {"type": "string", "maxLength": 80},
						"buttonHref": {"type": "string", "maxLength": 2000},
						"highlighted": {"type": "boolean"}
					},
					"required": ["name", "price"]
				}
			}
		},
		"required": ["tiers"]
	}`,
	Defaults: map[string]any{
		"heading": "Pricing",
		"tiers": []any{
			map[string]any{"name": "Starter", "price": "$9", "period": "/mo", "features": []any{"1 site", "Community support"}},
			map[string]any{"name": "Pro", "price": "$29", "period": "/mo", "features": []any{"10 sites", "Custom domain", "Priority support"}, "highlighted": true},
		},
	},
	Template: `<section class="sf-block sf-pricing">
{{if .Data.heading}}<h2>{{.Data.heading}}</h2>{{end}}
<div class="sf-pricing-grid">
{{range .Data.tiers}}<div class="sf-tier{{if .highlighted}} sf-tier-highlighted{{end}}">
<h3>{{.name}}</h3>
<p class="sf-price">{{.price}}{{if .period}}<span>{{.period}}</span>{{end}}</p>
{{if .features}}<ul>{{range .features}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .buttonLabel}}<a class="sf-button" href="{{.buttonHref}}">{{.buttonLabel}}</a>{{end}}
</div>{{end}}
</div>
</section>`,
}

var testimonialsDef = &Definition{
	Type:        "testimonials",
	Name:        "Testimonials",
	Description: "Customer quotes with names and roles.",
	Schema: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "maxLength": 200},
			"items": {
				"type": "array",
				"maxItems": 12,
				"items": {
					"type": "object",
					"properties": {
						"quote": {"type": "string", "minLength": 1, "maxLength": 1000},
						"author": {"type": "string", "maxLength": 120},
						"role": {"type": "string", "maxLength": 120},
						"avatar": {"type": "string", "maxLength": 2000}
					},
					"required": ["quote"]
				}
			}
		},
		"required": ["items"]
	}`,
	Defaults: map[string]any{
		"heading": "What our customers say",
		"items": []any{
			map[string]any{"quote": "Exactly what we needed.", "author": "Jamie", "role": "Founder"},
		},
	},
	Template: `<section class="sf-block sf-testimonials">
{{if .Data.heading}}<h2>{{.Data.heading}}</h2>{{end}}
<div class="sf-testimonials-grid">
{{range .Data.items}}<blockquote class="sf-testimonial">
<p>{{.quote}}</p>
{{if .author}}<footer>{{.author}}{{if .role}}, <span>{{.role}}</span>{{end}}</footer>{{end}}
</blockquote>{{end}}
</div>
</section>`,
}

var faqDef = &Definition{
	Type:        "faq",
	Name:        "FAQ",
	Description: "Expandable list of questions and answers.",
	Schema: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "maxLength": 200},
			"items": {
				"type": "array",
				"maxItems": 30,
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string", "minLength": 1, "maxLength": 300},
						"answer": {"type": "string", "minLength": 1, "maxLength": 2000}
					},
					"required": ["question", "answer"]
				}
			}
		},
		"required": ["items"]
	}`,
	Defaults: map[string]any{
		"heading": "Frequently asked questions",
		"items": []any{
			map[string]any{"question": "How do I get started?", "answer": "Create a site and start adding sections."},
		},
	},
	Template: `<section class="sf-block sf-faq">
{{if .Data.heading}}<h2>{{.Data.heading}}</h2>{{end}}
{{range .Data.items}}<details class="sf-faq-item">
<summary>{{.question}}</summary>
<p>{{.answer}}</p>
</details>{{end}}
</section>`,
}

var ctaDef = &Definition{
	Type:        "cta",
	Name:        "Call to Action",
	Description: "Highlighted banner with a single action button.",
	Schema: `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1, "maxLength": 200},
			"text": {"type": "string", "maxLength": 500},
			"buttonLabel": {"type": "string", "minLength": 1, "maxLength": 80},
			"buttonHref": {"type": "string", "maxLength": 2000}
		},
		"required": ["title", "buttonLabel"]
	}`,
	Defaults: map[string]any{
		"title":       "Ready to get started?",
		"text":        "Join today, cancel anytime.",
		"buttonLabel": "Sign up",
		"buttonHref":  "#",
	},
	Template: `<section class="sf-block sf-cta">
<h2>{{.Data.title}}</h2>
{{if .Data.text}}<p>{{.Data.text}}</p>{{end}}
<a class="sf-button" href="{{.Data.buttonHref}}">{{.Data.buttonLabel}}</a>
</section>`,
}

var imageDef = &Definition{
	Type:        "image",
	Name:        "Image",
	Description: "Single full-width image with optional caption.",
	Schema: `{
		"type": "object",
		"properties": {
			"image": {"type": "string", "minLength": 1, "maxLength": 2000},
			"alt": {"type": "string", "maxLength": 300},
			"caption": {"type": "string", "maxLength": 300}
		},
		"required": ["image"]
	}`,
	Defaults: map[string]any{
		"image": "",
		"alt":   "",
	},
	Template: `<figure class="sf-block sf-image">
<img src="{{.Data.image}}" alt="{{.Data.alt}}">
{{if .Data.caption}}<figcaption>{{.Data.caption}}</figcaption>{{end}}
</figure>`,
}

var galleryDef = &Definition{
	Type:        "gallery",
	Name:        "Gallery",
	Description: "Grid of images.",
	Schema: `{
		"type": "object",
		"properties": {
			"images": {
				"type": "array",
				"maxItems": 24,
				"items": {
					"type": "object",
					"properties": {
						"src": {"type": "string", "minLength": 1, "maxLength": 2000},
						"alt": {"type": "string", "maxLength": 300}
					},
					"required": ["src"]
				}
			},
			"columns": {"type": "integer", "minimum": 1, "maximum": 6}
		},
		"required": ["images"]
	}`,
	Defaults: map[string]any{
		"images":  []any{},
		"columns": 3,
	},
	Template: `<section class="sf-block sf-gallery sf-gallery-cols-{{.Data.columns}}">
{{range .Data.images}}<img src="{{.src}}" alt="{{.alt}}">{{end}}
</section>`,
}

var richTextDef = &Definition{
	Type:        "richtext",
	Name:        "Rich Text",
	Description: "Free-form text section written in Markdown.",
	Schema: `{
		"type": "object",
		"properties": {
			"markdown": {"type": "string", "maxLength": 100000}
		},
		"required": ["markdown"]
	}`,
	Defaults: map[string]any{
		"markdown": "## Section title\n\nWrite something here.",
	},
	Template: `<section class="sf-block sf-richtext">
{{markdown .Data.markdown}}
</section>`,
}

var contactDef = &Definition{
	Type:        "contact",
	Name:        "Contact Form",
	Description: "Simple contact form addressed to the site owner.",
	Schema: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "maxLength": 200},
			"buttonLabel": {"type": "string", "maxLength": 80},
			"successMessage": {"type": "string", "maxLength": 300}
		}
	}`,
	Defaults: map[string]any{
		"heading":        "Get in touch",
		"buttonLabel":    "Send",
		"successMessage": "Thanks, we will get back to you.",
	},
	// The hidden site field lets the form endpoint route the submission to
	// the right tenant.
	Template: `<section class="sf-block sf-contact">
{{if .Data.heading}}<h2>{{.Data.heading}}</h2>{{end}}
<form method="post" action="/__forms/contact">
<input type="hidden" name="site" value="{{.Site.SiteID}}">
<label>Name<input type="text" name="name" required></label>
<label>Email<input type="email" name="email" required></label>
<label>Message<textarea name="message" required></textarea></label>
<button type="submit" class="sf-button">{{.Data.buttonLabel}}</button>
</form>
</section>`,
}
