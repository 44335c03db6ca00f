package nav

import (
	"time"

	"github.com/justchokingaround/reel/internal/catalog"
)

// ListLoadedMsg carries the outcome of one List.Load
type ListLoadedMsg struct {
	Region  Region
	Token   uint64
	Page    catalog.Page
	Err     error
	Elapsed time.Duration
}

// SearchTickMsg fires when a debounce timer elapses
type SearchTickMsg struct {
	Seq uint64
}

// SearchCommittedMsg is emitted once per debounced query
type SearchCommittedMsg struct {
	Query string
}
