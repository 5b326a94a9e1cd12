package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"cocktaildb/internal/views/theme"
)

// Session describes the signed-in state shown in the navigation bar.
type Session struct {
	Authenticated bool
	EditorName    string
}

// Layout wraps content in the full HTML document with navigation and theme switch.
func Layout(title string, session Session, th theme.Theme, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		esc := templ.EscapeString
		toggle := theme.Resolve(th.Toggle)

		head := fmt.Sprintf(`<!DOCTYPE html><html lang="en" data-theme="%s"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title>`+
			`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.min.css">`+
			`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`+
			`<script>document.addEventListener("htmx:beforeSwap",function(e){var s=e.detail.xhr.status;`+
			`if(s===400||s===404||s===409){e.detail.shouldSwap=true;e.detail.isError=false;}});</script></head>`,
			esc(th.DataTheme), esc(title))
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		nav := fmt.Sprintf(`<body class="%s"><header class="%s"><nav><ul><li><strong>Cocktails</strong></li></ul><ul>`+
			`<li><a href="/" hx-get="/cocktails" hx-target="#main" hx-push-url="/">Cocktails</a></li>`+
			`<li><a href="/ingredients" hx-get="/ingredients" hx-target="#main" hx-push-url="true">Ingredients</a></li>`+
			`<li><form hx-post="/preferences/theme" hx-swap="none"><input type="hidden" name="theme" value="%s">`+
			`<button class="outline" type="submit">%s theme</button></form></li>`,
			esc(th.BodyClass), esc(th.ShellClass), esc(toggle.Key), esc(toggle.Label))
		if _, err := io.WriteString(w, nav); err != nil {
			return err
		}

		account := `<li><a href="/login">Sign in</a></li>`
		if session.Authenticated {
			account = fmt.Sprintf(`<li>%s</li><li><a href="/logout">Sign out</a></li>`, esc(session.EditorName))
		}
		if _, err := io.WriteString(w, account+`</ul></nav></header>`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<main id="main" class="%s">`, esc(th.ShellClass)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
