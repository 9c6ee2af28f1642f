package pager

// Stats represents i/o and cache state of a Pager instance.
type Stats struct {
	Name         string `json:"name,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
	MaxPages     int    `json:"max_pages,omitempty"`
	FileSize     int64  `json:"file_size"`
	Cached       int    `json:"cached"`
	Loads        int    `json:"loads"`
	Allocs       int    `json:"allocs"`
	Flushes      int    `json:"flushes"`
	BytesFlushed int64  `json:"bytes_flushed"`
	ReadOnly     bool   `json:"read_only,omitempty"`
	Closed       bool   `json:"closed,omitempty"`
}
