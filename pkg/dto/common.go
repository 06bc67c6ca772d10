package dto

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
}

type PostFilter struct {
	SubredditID string `form:"subredditId"`
	SortBy      string `form:"sortBy"` // "newest" (default), "top"
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}
