package types

// APIResponse represents a generic API response with typed data
type APIResponse[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListData represents a generic list data structure
type ListData[T any] struct {
	Items []T `json:"items"`
	Total int `json:"totalCount"`
}
