package dto

// PageSizes tamaños de página permitidos en los listados.
var PageSizes = []int{25, 50, 100, 250, 500}

// DefaultPageSize tamaño por defecto.
const DefaultPageSize = 25

// PageRequest paginación para listados.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize aplica los valores por defecto; un per_page fuera de PageSizes vuelve a 25.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	allowed := false
	for _, s := range PageSizes {
		if p.PerPage == s {
			allowed = true
			break
		}
	}
	if !allowed {
		p.PerPage = DefaultPageSize
	}
}

// Limit y Offset para el repositorio.
func (p PageRequest) Limit() int  { return p.PerPage }
func (p PageRequest) Offset() int { return (p.Page - 1) * p.PerPage }

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse calcula el total de páginas.
func NewPageResponse(p PageRequest, total int) PageResponse {
	pages := 0
	if p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return PageResponse{Page: p.Page, PerPage: p.PerPage, Total: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
