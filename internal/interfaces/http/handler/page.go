package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockdash/backend/internal/interfaces/http/middleware"
)

// PageTemplateName is the name the shell template is registered under
const PageTemplateName = "page"

// pageShell is the minimal document served for UI routes. The dashboard's
// real views are rendered client side and talk to /api.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | {{.App}}</title>
</head>
<body data-page="{{.Page}}"{{if .User}} data-user-role="{{.Role}}"{{end}}>
<main id="app">
<h1>{{.Title}}</h1>
{{if .User}}<p>Signed in as {{.User}}</p>{{end}}
</main>
</body>
</html>`

// PageTemplate returns the parsed shell template for gin's HTML renderer
func PageTemplate() *template.Template {
	return template.Must(template.New(PageTemplateName).Parse(pageShell))
}

// PageHandler serves the HTML shell of the UI routes
type PageHandler struct {
	appName string
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(appName string) *PageHandler {
	return &PageHandler{appName: appName}
}

// Render returns a handler rendering the shell with the given title
func (h *PageHandler) Render(page, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{
			"App":   h.appName,
			"Page":  page,
			"Title": title,
		}
		if p, ok := middleware.CurrentPrincipal(c); ok {
			data["User"] = p.Name
			data["Role"] = p.Role.String()
		}
		c.HTML(http.StatusOK, PageTemplateName, data)
	}
}

// Root sends visitors to the dashboard; the gateway takes care of sign-in
func (h *PageHandler) Root(home string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusFound, home)
	}
}
