package pages

import (
	"context"

	"github.com/a-h/templ"
)

// Alert renders an inline error message, used for rejected submissions.
func Alert(message string) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<p class="alert" role="alert">%s</p>`, message)
		return nil
	})
}

// Home lazily loads the cocktail table into the page shell.
func Home() templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.raw(`<div hx-get="/cocktails" hx-trigger="load" hx-swap="outerHTML"><p aria-busy="true">Loading cocktails…</p></div>`)
		return nil
	})
}

// LoginForm renders the editor sign-in form.
func LoginForm(message, email string) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.raw(`<article id="login"><h2>Editor sign in</h2>`)
		if message != "" {
			h.f(`<p class="alert" role="alert">%s</p>`, message)
		}
		h.raw(`<form method="post" action="/login" hx-post="/login" hx-target="#login" hx-swap="outerHTML">`)
		h.f(`<label>Email <input type="email" name="email" value="%s" autocomplete="username" required></label>`, email)
		h.raw(`<label>Password <input type="password" name="password" autocomplete="current-password" required></label>`)
		h.raw(`<button type="submit">Sign in</button></form></article>`)
		return nil
	})
}
