package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/krapie/tldraw-custom/internal/document"
	"github.com/krapie/tldraw-custom/internal/shape"
)

const maxBodySize = 16 << 20 // 16MB

type Handler struct {
	reg *shape.Registry
}

func NewHandler() *Handler {
	return &Handler{reg: shape.NewRegistry()}
}

type exportRequest struct {
	Document document.BoardDocument `json:"document"`
	PageID   string                 `json:"pageId"`
}

// ExportSVG renders one page of a posted document to SVG.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pageID := req.PageID
	if pageID == "" {
		pageID = req.Document.CurrentPage
	}
	page, ok := req.Document.Pages[pageID]
	if !ok {
		http.Error(w, fmt.Sprintf("page not found: %s", pageID), http.StatusBadRequest)
		return
	}

	svg := PageToSVG(h.reg, page)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="board.svg"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		slog.Debug("write svg response", "error", err)
	}
}
