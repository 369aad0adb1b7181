package web

import (
	"bytes"
	"html/template"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/spritepack"
	"badc0de.net/pkg/spritepack/paths"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>spritepack output</title></head>
<body>
<h1>{{.Root}}</h1>
{{if not .Categories}}<p>Nothing generated yet.</p>{{end}}
{{range .Categories}}
<h2>{{.Name}}</h2>
{{if .Sprites}}
<p><a href="/atlas/{{.Name}}">atlas</a> ({{.Width}}x{{.Height}}, {{len .Sprites}} sprites) &middot; <a href="/atlas/{{.Name}}/manifest">manifest</a></p>
<table>
{{range .Sprites}}<tr><td><a href="{{.Href}}"><img src="{{.DataURL}}" alt="{{.Key}}"></a></td><td>{{.Key}}</td><td>{{.Pos.X}},{{.Pos.Y}} {{.Pos.W}}x{{.Pos.H}}</td></tr>
{{end}}</table>
{{end}}
{{range .Animations}}<figure><img src="{{.Href}}" alt="{{.Name}}"><figcaption>{{.Name}}</figcaption></figure>
{{end}}
{{end}}
</body>
</html>
`))

type indexSprite struct {
	Key     string
	Href    string
	DataURL template.URL
	Pos     struct{ X, Y, W, H int }
}

type indexAnimation struct {
	Name string
	Href string
}

type indexCategory struct {
	Name          string
	Width, Height int
	Sprites       []indexSprite
	Animations    []indexAnimation
}

// spriteDataURL returns the sprite as an inline PNG.
func spriteDataURL(a *loadedAtlas, key string) (template.URL, error) {
	p, _ := a.m.Get(key)
	var buf bytes.Buffer
	if err := png.Encode(&buf, crop(a.img, p)); err != nil {
		return "", errors.Wrapf(err, "encoding sprite %s", key)
	}
	return template.URL(dataurl.New(buf.Bytes(), "image/png").String()), nil
}

func (h *Handler) category(name string) (indexCategory, error) {
	c := indexCategory{Name: name}

	if a, err := h.atlas(name); err == nil {
		b := a.img.Bounds()
		c.Width, c.Height = b.Dx(), b.Dy()
		for _, key := range a.m.Keys() {
			du, err := spriteDataURL(a, key)
			if err != nil {
				return c, err
			}
			s := indexSprite{
				Key:     key,
				Href:    "/sprite/" + name + "/" + key,
				DataURL: du,
			}
			p, _ := a.m.Get(key)
			s.Pos.X, s.Pos.Y, s.Pos.W, s.Pos.H = p.X, p.Y, p.W, p.H
			c.Sprites = append(c.Sprites, s)
		}
	} else if !isNotExist(err) {
		glog.Warningf("index: atlas %s: %v", name, err)
	}

	files, err := paths.Files(filepath.Join(h.root, name))
	if err != nil {
		return c, err
	}
	for _, f := range files {
		base := filepath.Base(f)
		if strings.EqualFold(filepath.Ext(base), ".gif") {
			c.Animations = append(c.Animations, indexAnimation{
				Name: strings.TrimSuffix(base, filepath.Ext(base)),
				Href: "/anim/" + name + "/" + base,
			})
		}
	}
	return c, nil
}

// isNotExist reports whether err means a file or directory is missing.
func isNotExist(err error) bool {
	var nf *spritepack.NotFoundError
	return errors.As(err, &nf) || os.IsNotExist(errors.Cause(err))
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Root       string
		Categories []indexCategory
	}{Root: h.root}

	names, err := paths.Subdirectories(h.root)
	if err != nil && !isNotExist(err) {
		glog.Errorf("index: %v", err)
		http.Error(w, "failed to list output", http.StatusInternalServerError)
		return
	}
	for _, name := range names {
		c, err := h.category(name)
		if err != nil {
			glog.Errorf("index: category %s: %v", name, err)
			http.Error(w, "failed to list "+name, http.StatusInternalServerError)
			return
		}
		data.Categories = append(data.Categories, c)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		glog.Errorf("index: %v", err)
		http.Error(w, "failed to render index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
