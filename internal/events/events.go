package events

import (
	"context"

	"github.com/groblegark/procmap/internal/model"
)

// Event topic constants
const (
	TopicAreaCreated    = "procmap.area.created"
	TopicAreaUpdated    = "procmap.area.updated"
	TopicAreaDeleted    = "procmap.area.deleted"
	TopicAreasReordered = "procmap.area.reordered"

	TopicProcessCreated = "procmap.process.created"
	TopicProcessUpdated = "procmap.process.updated"
	TopicProcessMoved   = "procmap.process.moved"
	TopicProcessDeleted = "procmap.process.deleted"
)

// Event types

type AreaCreated struct {
	Area *model.Area `json:"area"`
}

type AreaUpdated struct {
	Area *model.Area `json:"area"`
}

type AreaDeleted struct {
	AreaID string `json:"area_id"`
}

type AreasReordered struct {
	OrderedIDs []string `json:"ordered_ids"`
}

type ProcessCreated struct {
	Process *model.Process `json:"process"`
}

type ProcessUpdated struct {
	Process *model.Process `json:"process"`
}

type ProcessMoved struct {
	Process     *model.Process `json:"process"`
	OldParentID *string        `json:"old_parent_id"`
}

type ProcessDeleted struct {
	ProcessID  string   `json:"process_id"`
	DeletedIDs []string `json:"deleted_ids"` // every id removed by the cascade
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
