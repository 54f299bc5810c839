package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed static
var staticFiles embed.FS

//go:embed templates
var templateFiles embed.FS

// StaticFS статические файлы без префикса "static/"
var StaticFS fs.FS

// Templates скомпилированные шаблоны всех страниц
var Templates *template.Template

var funcs = template.FuncMap{
	"humanSize": humanSize,
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"add": func(a, b int) int { return a + b },
}

func init() {
	var err error

	StaticFS, err = fs.Sub(staticFiles, "static")
	if err != nil {
		panic("web: failed to create static FS: " + err.Error())
	}

	Templates, err = template.New("").Funcs(funcs).ParseFS(templateFiles,
		"templates/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		panic("web: failed to parse templates: " + err.Error())
	}
}
