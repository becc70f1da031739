package models

// Pagination describes the server-side paging of the admin submissions list.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// AdminPage is one server-paginated page of submissions. Search, filter and
// sort refinements apply to this page only, never globally.
type AdminPage struct {
	Submissions []Submission
	Pagination  Pagination
}

// Analytics is the admin aggregate summary.
type Analytics struct {
	TotalSubmissions int     `json:"totalSubmissions"`
	InGradingCount   int     `json:"inGradingCount"`
	PaidRevenue      float64 `json:"paidRevenue"`
	UnpaidRevenue    float64 `json:"unpaidRevenue"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// Metrics is the precomputed per-user dashboard summary.
type Metrics struct {
	TotalSubmissions int     `json:"totalSubmissions"`
	TotalCards       int     `json:"totalCards"`
	InGradingCount   int     `json:"inGradingCount"`
	CompletedCount   int     `json:"completedCount"`
	TotalSpent       float64 `json:"totalSpent"`
}
