package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/report"
	"github.com/JonMunkholm/pricelist/internal/web/templates"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductsResponse is the body of GET /api/products.
type ProductsResponse struct {
	Query    string         `json:"query"`
	Count    int            `json:"count"`
	Total    int            `json:"total"`
	Products []core.Product `json:"products"`
}

// handleIndex renders the catalog page filtered by ?q=, cheapest per kilogram first.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := templates.PageData{
		Query:    query,
		Total:    s.service.Len(),
		Products: s.service.SearchSorted(query),
	}

	var buf bytes.Buffer
	if err := templates.Page(data).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// handleListProducts returns the products matching ?q= as JSON.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	products := s.service.SearchSorted(query)

	writeJSON(w, ProductsResponse{
		Query:    query,
		Count:    len(products),
		Total:    s.service.Len(),
		Products: products,
	})
}

// handleReload runs another load pass and returns its report.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Reload(r.Context())
	if err != nil {
		s.respondError(w, r, err, loadStatus(err))
		return
	}
	writeJSON(w, result)
}

// handleReloadPage is handleReload for the page form: it redirects back.
func (s *Server) handleReloadPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Reload(r.Context()); err != nil {
		s.respondError(w, r, err, loadStatus(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExportHTML downloads the whole catalog as the HTML document.
func (s *Server) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := report.Document(s.service.Products()).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="output.html"`)
	buf.WriteTo(w)
}

// handleExportXLSX downloads the whole catalog as a workbook.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, s.service.Products()); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="prices_%s.xlsx"`, timestamp))
	buf.WriteTo(w)
}

// handleHealth reports liveness and the catalog size.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"products": s.service.Len(),
	})
}
