// Package web serves generated atlases, manifests, sprites and animations
// for previewing in a browser.
//
// The handler only reads the output tree; it never runs the pipelines.
package web

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/imagemeta"
	"badc0de.net/pkg/spritepack/manifest"
)

// bump if the way sprites are cropped changes
const generation = 1

type Handler struct {
	root         string
	imageName    string
	manifestName string

	atlasLock sync.Mutex
	atlases   map[string]*loadedAtlas
}

// loadedAtlas is a decoded atlas image and its manifest, valid as long as
// neither file changes.
type loadedAtlas struct {
	img     image.Image
	m       *manifest.Manifest
	modTime time.Time
}

// NewHandler constructs a web handler serving the output tree of cfg.
func NewHandler(cfg config.Config) *Handler {
	return &Handler{
		root:         cfg.OutputPath,
		imageName:    cfg.AtlasImageName,
		manifestName: cfg.AtlasManifestName,
		atlases:      map[string]*loadedAtlas{},
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/atlas/{cat}", h.atlasHandler)
	r.HandleFunc("/atlas/{cat}/manifest", h.manifestHandler)
	r.HandleFunc("/sprite/{cat}/{key}", h.spriteHandler)
	r.HandleFunc("/anim/{cat}/{name}", h.animHandler)
}

// validName rejects path elements that would escape the output tree.
func validName(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.ContainsAny(s, `/\`)
}

func (h *Handler) categoryVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	cat := mux.Vars(r)["cat"]
	if !validName(cat) {
		http.Error(w, "bad category", http.StatusBadRequest)
		return "", false
	}
	return cat, true
}

// newest returns the latest modification time of the given files.
func newest(paths ...string) (time.Time, error) {
	var t time.Time
	for _, p := range paths {
		s, err := os.Stat(p)
		if err != nil {
			return time.Time{}, err
		}
		if s.ModTime().After(t) {
			t = s.ModTime()
		}
	}
	return t, nil
}

// atlas returns the decoded atlas of cat, reloading it when either file
// changed on disk. A missing atlas yields an error satisfying os.IsNotExist.
func (h *Handler) atlas(cat string) (*loadedAtlas, error) {
	imagePath := filepath.Join(h.root, cat, h.imageName)
	manifestPath := filepath.Join(h.root, cat, h.manifestName)
	modTime, err := newest(imagePath, manifestPath)
	if err != nil {
		return nil, err
	}

	h.atlasLock.Lock()
	defer h.atlasLock.Unlock()

	if a, ok := h.atlases[cat]; ok && a.modTime.Equal(modTime) {
		return a, nil
	}

	img, err := imagemeta.Load(imagePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := manifest.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", manifestPath)
	}

	a := &loadedAtlas{img: img, m: m, modTime: modTime}
	h.atlases[cat] = a
	glog.V(2).Infof("loaded atlas %s: %d sprites", cat, m.Len())
	return a, nil
}

func (h *Handler) loadError(w http.ResponseWriter, cat string, err error) {
	if isNotExist(err) {
		http.Error(w, "no atlas for "+cat, http.StatusNotFound)
		return
	}
	glog.Errorf("loading atlas %s: %v", cat, err)
	http.Error(w, "failed to load atlas", http.StatusInternalServerError)
}

// serveFile serves a file under the output root, letting http.ServeContent
// handle conditional and range requests. An empty mime is sniffed from the
// file's first bytes.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, path, mime string) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to open file", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	s, err := f.Stat()
	if err != nil || !s.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}
	if mime == "" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		mime = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, filepath.Base(path), s.ModTime(), f)
}

func (h *Handler) atlasHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryVar(w, r)
	if !ok {
		return
	}
	// The encoder may write PNG under a .webp name, so the type is sniffed.
	h.serveFile(w, r, filepath.Join(h.root, cat, h.imageName), "")
}

func (h *Handler) manifestHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryVar(w, r)
	if !ok {
		return
	}
	h.serveFile(w, r, filepath.Join(h.root, cat, h.manifestName), "application/json")
}

// crop copies the sprite at p out of the atlas.
func crop(atlas image.Image, p manifest.Position) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, p.W, p.H))
	draw.Draw(dst, dst.Bounds(), atlas, atlas.Bounds().Min.Add(image.Pt(p.X, p.Y)), draw.Src)
	return dst
}

func (h *Handler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryVar(w, r)
	if !ok {
		return
	}
	key := mux.Vars(r)["key"]

	a, err := h.atlas(cat)
	if err != nil {
		h.loadError(w, cat, err)
		return
	}
	p, ok := a.m.Get(key)
	if !ok {
		http.Error(w, "no sprite "+key+" in "+cat, http.StatusNotFound)
		return
	}

	mime := "image/png"
	etag := fmt.Sprintf(`W/"sprite:%d:%s:%s:%x:%d.%d.%d.%d:%s"`, generation, cat, key, a.modTime.UnixNano(), p.X, p.Y, p.W, p.H, mime)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=3600")
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop(a.img, p)); err != nil {
		glog.Errorf("encoding sprite %s/%s: %v", cat, key, err)
		http.Error(w, "failed to encode sprite", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", a.modTime.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *Handler) animHandler(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.categoryVar(w, r)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	if !validName(name) {
		http.Error(w, "bad animation name", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(name, ".gif") {
		name += ".gif"
	}
	h.serveFile(w, r, filepath.Join(h.root, cat, name), "image/gif")
}
