// Package client provides a transport-agnostic interface for the procmap
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/groblegark/procmap/internal/model"
)

// ProcessMapClient is the interface that all procmap CLI commands use to
// communicate with the server. It is implemented by HTTPClient and can be
// backed by any transport.
type ProcessMapClient interface {
	// Areas
	CreateArea(ctx context.Context, req *CreateAreaRequest) (*model.Area, error)
	GetArea(ctx context.Context, id string) (*model.Area, error)
	ListAreas(ctx context.Context) (*ListAreasResponse, error)
	UpdateArea(ctx context.Context, id string, req *UpdateAreaRequest) (*model.Area, error)
	DeleteArea(ctx context.Context, id string) error
	ReorderAreas(ctx context.Context, orderedIDs []string) error

	// Processes
	CreateProcess(ctx context.Context, req *CreateProcessRequest) (*model.Process, error)
	GetProcess(ctx context.Context, id string) (*model.Process, error)
	UpdateProcess(ctx context.Context, id string, req *UpdateProcessRequest) (*model.Process, error)
	MoveProcess(ctx context.Context, id string, parentID *string) (*model.Process, error)
	DeleteProcess(ctx context.Context, id string) ([]string, error)

	// Tree views
	GetTree(ctx context.Context, query string) ([]*model.ProcessNode, error)
	Breadcrumb(ctx context.Context, id string) ([]*model.Process, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateAreaRequest holds parameters for creating an area.
type CreateAreaRequest struct {
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
}

// UpdateAreaRequest holds optional parameters for updating an area.
// Nil pointer fields mean "don't change".
type UpdateAreaRequest struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
}

// ListAreasResponse is the response from ListAreas.
type ListAreasResponse struct {
	Areas []*model.Area `json:"areas"`
	Total int           `json:"total"`
}

// CreateProcessRequest holds parameters for creating a process.
type CreateProcessRequest struct {
	Name          string  `json:"name"`
	AreaID        string  `json:"areaId"`
	ParentID      *string `json:"parentId,omitempty"`
	Tools         string  `json:"tools,omitempty"`
	Responsible   string  `json:"responsible,omitempty"`
	Documentation string  `json:"documentation,omitempty"`
	Status        string  `json:"status,omitempty"`
	Order         *int    `json:"order,omitempty"`
}

// UpdateProcessRequest holds optional parameters for updating a process.
// Nil pointer fields mean "don't change". Reparenting is a separate move
// operation.
type UpdateProcessRequest struct {
	Name          *string `json:"name,omitempty"`
	Tools         *string `json:"tools,omitempty"`
	Responsible   *string `json:"responsible,omitempty"`
	Documentation *string `json:"documentation,omitempty"`
	Status        *string `json:"status,omitempty"`
	Order         *int    `json:"order,omitempty"`
}
