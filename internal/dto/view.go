package dto

import (
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
)

// UpdateFiltersRequest carries a partial filter change for the view session.
// Pointers distinguish "absent" (keep the stored value) from "set to empty"
// (clear it): an empty custom bound means unbounded, an empty type or
// category removes that restriction.
type UpdateFiltersRequest struct {
	Mode     *string `json:"mode" binding:"omitempty,oneof=month year custom"`
	Month    *string `json:"month"`
	Year     *string `json:"year"`
	From     *string `json:"from" binding:"omitempty,txdate"`
	To       *string `json:"to" binding:"omitempty,txdate"`
	Type     *string `json:"type" binding:"omitempty,oneof=Income Expense"`
	Category *string `json:"category"`
}

// ToFilterUpdate converts the request into the domain filter update.
func (r UpdateFiltersRequest) ToFilterUpdate() domain.FilterUpdate {
	upd := domain.FilterUpdate{
		Month:    r.Month,
		Year:     r.Year,
		From:     r.From,
		To:       r.To,
		Category: r.Category,
	}
	if r.Mode != nil {
		mode := domain.FilterMode(*r.Mode)
		upd.Mode = &mode
	}
	if r.Type != nil {
		typ := domain.TransactionType(*r.Type)
		upd.Type = &typ
	}
	return upd
}

// UpdateViewPageRequest moves the view session to another page, optionally
// changing the page size at the same time.
type UpdateViewPageRequest struct {
	Page     int  `json:"page" binding:"required,min=1"`
	PageSize *int `json:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ViewResponse is the full snapshot of the view session the presentation
// layer renders from: the current table page, the dashboard aggregates and
// the loading/error flags for both.
type ViewResponse struct {
	Filters     domain.FilterState          `json:"filters"`
	Page        int                         `json:"page"`
	PageSize    int                         `json:"pageSize"`
	PageItems   []TransactionResponse       `json:"pageItems"`
	TotalCount  int                         `json:"totalCount"`
	Totals      TotalsResponse              `json:"totals"`
	Monthly     []MonthlySummaryRowResponse `json:"monthly"`
	LoadingPage bool                        `json:"loadingPage"`
	LoadingFull bool                        `json:"loadingFull"`
	ErrorPage   string                      `json:"errorPage,omitempty"`
	ErrorFull   string                      `json:"errorFull,omitempty"`
}

// ToViewResponse converts a view state snapshot to its DTO.
func ToViewResponse(view domain.ViewState) ViewResponse {
	return ViewResponse{
		Filters:     view.Filters,
		Page:        view.Page,
		PageSize:    view.PageSize,
		PageItems:   ToTransactionResponses(view.PageItems),
		TotalCount:  view.TotalCount,
		Totals:      ToTotalsResponse(view.Totals, view.Filters.Filter),
		Monthly:     ToMonthlySummaryResponse(view.Monthly).Months,
		LoadingPage: view.LoadingPage,
		LoadingFull: view.LoadingFull,
		ErrorPage:   view.ErrorPage,
		ErrorFull:   view.ErrorFull,
	}
}
