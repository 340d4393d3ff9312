// File: internal/web/web.go
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var content embed.FS

// Templates parses the embedded page templates. Each page is addressed by its file name.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(content, "templates/*.html"))
}

// Static returns the embedded static assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Mount installs the templates and asset routes on router.
// The avatar placeholder and favicon are served from the site root.
func Mount(router *gin.Engine) {
	router.SetHTMLTemplate(Templates())
	assets := Static()
	router.StaticFS("/static", assets)
	router.StaticFileFS("/tempuser.png", "tempuser.png", assets)
	router.StaticFileFS("/favicon.png", "favicon.png", assets)
}
