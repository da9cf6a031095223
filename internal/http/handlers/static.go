package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bustracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /
func (a *API) Index(c *gin.Context) {
	if file, ok := a.staticFile("/index.html"); ok {
		c.File(file)
		return
	}
	RespondError(c, http.StatusNotFound, "Route not found.")
}

// NoRoute serves dashboard assets from STATIC_DIR and answers everything else with a JSON 404.
func (a *API) NoRoute(c *gin.Context) {
	method := c.Request.Method
	if (method == http.MethodGet || method == http.MethodHead) && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		if file, ok := a.staticFile(c.Request.URL.Path); ok {
			c.File(file)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"message":    "Route not found.",
		"path":       c.Request.URL.Path,
		"method":     method,
		"request_id": middleware.GetRequestID(c),
	})
}

// staticFile resolves urlPath inside StaticDir. Dotfiles and paths escaping the directory are rejected.
func (a *API) staticFile(urlPath string) (string, bool) {
	root := a.Env.StaticDir
	if root == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		clean = "/index.html"
	}
	for _, part := range strings.Split(clean, "/") {
		if strings.HasPrefix(part, ".") {
			return "", false
		}
	}
	full := filepath.Join(root, filepath.FromSlash(clean))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absFull, err := filepath.Abs(full)
	if err != nil || !strings.HasPrefix(absFull, absRoot+string(filepath.Separator)) {
		return "", false
	}

	info, err := os.Stat(absFull)
	if err != nil || info.IsDir() {
		return "", false
	}
	return absFull, true
}
