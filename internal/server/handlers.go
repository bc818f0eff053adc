package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/five82/phrasebook/internal/cache"
	"github.com/five82/phrasebook/internal/library"
)

type categoryResponse struct {
	Path      string   `json:"path"`
	Label     string   `json:"label"`
	Title     string   `json:"title"`
	Resource  string   `json:"resource,omitempty"`
	Aliases   []string `json:"aliases,omitempty"`
	Available bool     `json:"available"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Documents  int    `json:"documents"`
	LastLoaded string `json:"lastLoaded,omitempty"`
	LastError  string `json:"lastError,omitempty"`
	// Missing lists catalog resources the library does not hold.
	Missing []string `json:"missing,omitempty"`
}

func (s *Server) healthz(c *gin.Context) {
	snap := s.store.Snapshot()
	resp := healthResponse{Status: "ok", Documents: len(snap.Documents)}
	if !snap.LastLoaded.IsZero() {
		resp.LastLoaded = snap.LastLoaded.UTC().Format("2006-01-02T15:04:05Z")
	}
	if snap.LastError != nil {
		resp.Status = "degraded"
		resp.LastError = snap.LastError.Error()
	}
	for _, res := range s.catalog.Resources() {
		if _, ok := snap.Documents[strings.TrimPrefix(res, "/")]; !ok {
			resp.Missing = append(resp.Missing, res)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) categories(c *gin.Context) {
	cats := s.catalog.Categories()
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		available := false
		if cat.HasResource() {
			_, available = s.store.Lookup(strings.TrimPrefix(cat.Resource, "/"))
		}
		out = append(out, categoryResponse{
			Path:      cat.Path,
			Label:     cat.Label,
			Title:     cat.Title,
			Resource:  cat.Resource,
			Aliases:   cat.Aliases,
			Available: available,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (s *Server) document(c *gin.Context) {
	name := c.Param("file")
	if !library.ValidName(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	ctx := c.Request.Context()
	entry, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("cache read failed")
	}
	if !ok {
		doc, found := s.store.Lookup(name)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		entry = cache.Entry{Body: doc.Body, ETag: doc.ETag}
	}

	c.Header("ETag", entry.ETag)
	c.Header("Cache-Control", "no-cache")
	if matchesETag(c.GetHeader("If-None-Match"), entry.ETag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Body)
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
