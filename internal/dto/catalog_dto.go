package dto

import (
	"legis-catalog-client/internal/entity"
)

// SetFiltersRequest replaces the active filter state. Nil pointer fields
// mean "leave as is"; empty slices mean "clear this filter".
type SetFiltersRequest struct {
	Categories    *[]string `json:"categories"`
	Status        *string   `json:"status" validate:"omitempty,oneof=introduced committee floor passed enacted"`
	Sessions      *[]string `json:"sessions"`
	HighlightOnly *bool     `json:"highlight_only"`
	SortOrder     *string   `json:"sort_order" validate:"omitempty,oneof=latest earliest"`
}

type BillView struct {
	entity.Bill
	Highlighted bool `json:"highlighted"`
}

type PaginationWindow struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type CatalogViewResponse struct {
	Bills      []BillView       `json:"bills"`
	Pagination PaginationWindow `json:"pagination"`
}

type FilterStateResponse struct {
	Categories    []string `json:"categories"`
	Status        *string  `json:"status"`
	Sessions      []string `json:"sessions"`
	HighlightOnly bool     `json:"highlight_only"`
	SortOrder     string   `json:"sort_order"`
}

type SessionListResponse struct {
	Sessions []*entity.SessionDescriptor `json:"sessions"`
}
