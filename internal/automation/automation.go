// Package automation defines the host-side collaborators of a bridge: the
// router that receives dispatched trees and results, and the delegate that
// owns accessibility mode and executes actions.
package automation

import "github.com/mj1618/axbridge/internal/model"

// Router receives everything a bridge dispatches to the host automation layer.
type Router interface {
	// DispatchAccessibilityEvents delivers the updates and events of one
	// Android event.
	DispatchAccessibilityEvents(batch model.EventBatch)
	DispatchActionResult(data model.ActionData, result bool)
	// DispatchGetTextLocationDataResult delivers a text location; rect is nil
	// when the location is unknown.
	DispatchGetTextLocationDataResult(data model.ActionData, rect *model.Rect)
	DispatchTreeDestroyed(treeID string)
}

// ActionDelegate owns the accessibility mode and forwards actions to Android.
type ActionDelegate interface {
	UseFullFocusMode() bool
	OnAction(data model.ActionData)
}

// ActionResult is a recorded action outcome.
type ActionResult struct {
	Data   model.ActionData `yaml:"data"   json:"data"`
	Result bool             `yaml:"result" json:"result"`
}

// TextLocationResult is a recorded text location outcome.
type TextLocationResult struct {
	Data model.ActionData `yaml:"data"           json:"data"`
	Rect *model.Rect      `yaml:"rect,omitempty" json:"rect,omitempty"`
}

// Tee fans every dispatch out to several routers in order.
func Tee(routers ...Router) Router {
	return tee(routers)
}

type tee []Router

func (t tee) DispatchAccessibilityEvents(batch model.EventBatch) {
	for _, r := range t {
		r.DispatchAccessibilityEvents(batch)
	}
}

func (t tee) DispatchActionResult(data model.ActionData, result bool) {
	for _, r := range t {
		r.DispatchActionResult(data, result)
	}
}

func (t tee) DispatchGetTextLocationDataResult(data model.ActionData, rect *model.Rect) {
	for _, r := range t {
		r.DispatchGetTextLocationDataResult(data, rect)
	}
}

func (t tee) DispatchTreeDestroyed(treeID string) {
	for _, r := range t {
		r.DispatchTreeDestroyed(treeID)
	}
}
