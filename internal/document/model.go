package document

import "github.com/krapie/tldraw-custom/internal/shape"

// BoardDocument is the full serialized state of a board: metadata plus the
// pages with their shapes and bindings. This is what gets snapshotted to the
// database and shipped to clients on connect.
type BoardDocument struct {
	Board       Board            `json:"board"`
	Pages       map[string]*Page `json:"pages"`
	CurrentPage string           `json:"currentPage"`
}

type Board struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   int      `json:"version"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Pages     []string `json:"pages"`
}

// Page holds the shapes and bindings of a single canvas.
type Page struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Shapes   map[string]*shape.Shape   `json:"shapes"`
	Bindings map[string]*shape.Binding `json:"bindings"`
}

// Clone deep-copies the page so one goroutine can snapshot it while another
// keeps applying operations.
func (p *Page) Clone() *Page {
	out := &Page{
		ID:       p.ID,
		Name:     p.Name,
		Shapes:   make(map[string]*shape.Shape, len(p.Shapes)),
		Bindings: make(map[string]*shape.Binding, len(p.Bindings)),
	}
	for id, s := range p.Shapes {
		out.Shapes[id] = s.Clone()
	}
	for id, b := range p.Bindings {
		c := *b
		out.Bindings[id] = &c
	}
	return out
}

// NewEmptyDocument creates an empty document for a new board
func NewEmptyDocument(boardID, boardName, pageID string) *BoardDocument {
	return &BoardDocument{
		Board: Board{
			ID:        boardID,
			Name:      boardName,
			Version:   1,
			CreatedAt: "", // Will be set by caller
			UpdatedAt: "",
			Pages:     []string{pageID},
		},
		Pages: map[string]*Page{
			pageID: {
				ID:       pageID,
				Name:     "Page 1",
				Shapes:   map[string]*shape.Shape{},
				Bindings: map[string]*shape.Binding{},
			},
		},
		CurrentPage: pageID,
	}
}
