// Package table builds the data handed to the generic tabular rendering
// collaborator: ordered rows, per-row action links as plain data, and a
// page-size hint. No markup is produced here.
package table

// Page-size hints observed per listing.
const (
	ClientsPageSize = 10
	LignesPageSize  = 2
)

// Action is one per-row affordance (edit, delete, drill-down). The renderer
// decides how a style maps to an actual widget.
type Action struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Style string `json:"style"`
}

type Row struct {
	Cells   []any    `json:"cells"`
	Actions []Action `json:"actions,omitempty"`
}

type Payload struct {
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
	PageSize int      `json:"page_size"`
	Total    int64    `json:"total"`
}

func New(columns []string, pageSize int) *Payload {
	return &Payload{Columns: columns, Rows: []Row{}, PageSize: pageSize}
}

func (p *Payload) Add(cells []any, actions ...Action) {
	p.Rows = append(p.Rows, Row{Cells: cells, Actions: actions})
}
