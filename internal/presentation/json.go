package presentation

import (
	"github.com/bytedance/sonic"

	"github.com/penwyp/cloudwatcher/internal/core/model"
)

func marshalEvent(e model.RawEvent) ([]byte, error) {
	return sonic.Marshal(e)
}

// MarshalGroups renders group descriptors for the list command's JSON output.
func MarshalGroups(groups []model.GroupDescriptor) ([]byte, error) {
	return sonic.MarshalIndent(groups, "", "  ")
}
