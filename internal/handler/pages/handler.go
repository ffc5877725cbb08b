package pages

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const MsgPageNotFound = "Page not found"

// Pages maps each page route to its file under <root>/views.
var Pages = map[string]string{
	"/":                   "index.html",
	"/doctor-profile":     "doctor_profile.html",
	"/book-appointment":   "book_appointment.html",
	"/cancel-appointment": "cancel_appointment.html",
	"/hospital":           "hospital.html",
	"/stores":             "stores.html",
	"/doctors":            "doctors.html",
	"/organs":             "organs.html",
	"/blood":              "blood.html",
}

// Handler serves the HTML pages and the asset tree rooted at root.
type Handler struct {
	root   string
	assets http.FileSystem
}

func NewHandler(root string) *Handler {
	return &Handler{
		root:   root,
		assets: gin.Dir(root, false),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	for route, file := range Pages {
		r.GET(route, h.page(file))
	}
	r.StaticFS("/static", h.assets)
}

func (h *Handler) page(file string) gin.HandlerFunc {
	full := filepath.Join(h.root, "views", file)
	return func(c *gin.Context) {
		if info, err := os.Stat(full); err != nil || info.IsDir() {
			c.String(http.StatusNotFound, MsgPageNotFound)
			return
		}
		c.File(full)
	}
}

// ServeAsset serves a file from the web root at the request path, so pages
// can reference assets by absolute path. It reports false when no such file
// exists and nothing was written.
func (h *Handler) ServeAsset(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return false
	}

	name := path.Clean("/" + strings.TrimPrefix(c.Request.URL.Path, "/"))
	f, err := h.assets.Open(name)
	if err != nil {
		return false
	}
	info, err := f.Stat()
	f.Close()
	if err != nil || info.IsDir() {
		return false
	}

	c.Status(http.StatusOK)
	c.FileFromFS(name, h.assets)
	return true
}
