package model

import "time"

// ProcessStatus classifies how a process is executed.
// An empty status means the process has not been classified yet.
type ProcessStatus string

const (
	StatusManual   ProcessStatus = "MANUAL"
	StatusSystemic ProcessStatus = "SYSTEMIC"
)

// String returns the string representation of the status.
func (s ProcessStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value. Empty is allowed.
func (s ProcessStatus) IsValid() bool {
	switch s {
	case "", StatusManual, StatusSystemic:
		return true
	}
	return false
}

// Process is one node in a per-area hierarchy describing a business activity.
// ParentID is nil for area roots. Level caches the depth in the tree (root = 0)
// and is recomputed for the whole subtree whenever a node is reparented.
type Process struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	AreaID        string        `json:"areaId"`
	ParentID      *string       `json:"parentId"`
	Level         int           `json:"level"`
	Order         int           `json:"order"`
	Tools         string        `json:"tools,omitempty"`
	Responsible   string        `json:"responsible,omitempty"`
	Documentation string        `json:"documentation,omitempty"`
	Status        ProcessStatus `json:"status,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ProcessNode is the in-memory tree view of a Process with nested children.
// It is derived on read and never persisted.
type ProcessNode struct {
	Process
	Children []*ProcessNode `json:"children"`
}
