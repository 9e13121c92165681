package server

import (
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/model"
	"github.com/mj1618/axbridge/internal/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DispatchResult is the reply to dispatch_event.
type DispatchResult struct {
	Seq     int                `yaml:"seq"               json:"seq"`
	Dropped bool               `yaml:"dropped,omitempty" json:"dropped,omitempty"`
	Batches []model.EventBatch `yaml:"batches,omitempty" json:"batches,omitempty"`
}

// ActionReply is the reply to perform_action and action_result.
type ActionReply struct {
	Forwarded []model.ActionData        `yaml:"forwarded,omitempty" json:"forwarded,omitempty"`
	Results   []automation.ActionResult `yaml:"results,omitempty"   json:"results,omitempty"`
}

// TextLocationReply is the reply to text_location_result.
type TextLocationReply struct {
	Locations []automation.TextLocationResult `yaml:"locations,omitempty" json:"locations,omitempty"`
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("dispatch_event",
			mcp.WithDescription("Feed one Android accessibility event, with its window and node snapshot, through the bridge. Returns the tree updates and host events it produced."),
			mcp.WithString("event", mcp.Description("The event as YAML or JSON: type, source, window, windows, nodes, ints, text"), mcp.Required()),
		),
		s.handleDispatchEvent,
	)

	s.mcp.AddTool(
		mcp.NewTool("read_tree",
			mcp.WithDescription("Read the host tree as the consumer currently sees it, flattened with role paths and stable refs"),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to include (e.g. \"btn,input\" or \"interactive\")")),
			mcp.WithString("text", mcp.Description("Filter elements by text content")),
			mcp.WithBoolean("focused", mcp.Description("Only return the focused element")),
			mcp.WithBoolean("prune", mcp.Description("Drop anonymous groups (automatic for web content)")),
		),
		s.handleReadTree,
	)

	s.mcp.AddTool(
		mcp.NewTool("perform_action",
			mcp.WithDescription("Ask Android to perform an action on a node, addressed by id or ref"),
			mcp.WithString("action", mcp.Description("Action name (click, focus, long-click, scroll-forward, set-text, ...)"), mcp.Required()),
			mcp.WithNumber("id", mcp.Description("Target node id")),
			mcp.WithString("ref", mcp.Description("Target ref from read_tree (exact or suffix)")),
			mcp.WithNumber("request_id", mcp.Description("Request id echoed back in the result")),
			mcp.WithNumber("start_index", mcp.Description("Text range start for text actions")),
			mcp.WithNumber("end_index", mcp.Description("Text range end for text actions")),
		),
		s.handlePerformAction,
	)

	s.mcp.AddTool(
		mcp.NewTool("action_result",
			mcp.WithDescription("Report whether Android performed a forwarded action"),
			mcp.WithString("action", mcp.Description("Action name"), mcp.Required()),
			mcp.WithNumber("id", mcp.Description("Target node id"), mcp.Required()),
			mcp.WithBoolean("result", mcp.Description("Whether the action succeeded"), mcp.Required()),
			mcp.WithNumber("request_id", mcp.Description("Request id of the action")),
		),
		s.handleActionResult,
	)

	s.mcp.AddTool(
		mcp.NewTool("text_location_result",
			mcp.WithDescription("Report the screen location Android computed for a text range. Omit the rectangle when the range has no location."),
			mcp.WithString("action", mcp.Description("Action name"), mcp.Required()),
			mcp.WithNumber("id", mcp.Description("Target node id"), mcp.Required()),
			mcp.WithNumber("request_id", mcp.Description("Request id of the action")),
			mcp.WithNumber("start_index", mcp.Description("Text range start")),
			mcp.WithNumber("end_index", mcp.Description("Text range end")),
			mcp.WithNumber("x", mcp.Description("Left edge in screen pixels")),
			mcp.WithNumber("y", mcp.Description("Top edge in screen pixels")),
			mcp.WithNumber("w", mcp.Description("Width in pixels")),
			mcp.WithNumber("h", mcp.Description("Height in pixels")),
		),
		s.handleTextLocationResult,
	)

	s.mcp.AddTool(
		mcp.NewTool("reset",
			mcp.WithDescription("Destroy the tree: forget focus, live regions, hooks and everything the consumer was sent"),
		),
		s.handleReset,
	)
}

// reply serializes v in the server's output format.
func (s *Server) reply(v interface{}) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := output.Fprint(&buf, s.format, v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func decodeEvent(text string) (*model.Event, error) {
	var ev model.Event
	dec := yaml.NewDecoder(strings.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&ev); err != nil {
		return nil, errors.Wrap(err, "decode event")
	}
	if ev.Type == "" {
		return nil, errors.New("event has no type")
	}
	return &ev, nil
}

func (s *Server) handleDispatchEvent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("event")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev, err := decodeEvent(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bridge.NotifyAccessibilityEvent(ev)
	result := DispatchResult{Seq: s.events, Batches: s.recorder.TakeBatches()}
	result.Dropped = len(result.Batches) == 0
	s.events++
	s.logger.Debug("event dispatched",
		zap.String("type", string(ev.Type)), zap.Int("seq", result.Seq), zap.Bool("dropped", result.Dropped))
	return s.reply(result)
}

// readElements returns the consumer's flattened tree with refs attached.
func (s *Server) readElements() []model.FlatElement {
	elements := s.recorder.Flatten()
	model.AnnotateRefs(elements, s.recorder.Refs())
	return elements
}

func (s *Server) handleReadTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := model.ElementFilter{
		Roles:   model.ParseRoles(request.GetString("roles", "")),
		Text:    request.GetString("text", ""),
		Focused: request.GetBool("focused", false),
		Prune:   request.GetBool("prune", false),
	}
	result := output.TreeResult{
		TreeID:      s.bridge.TreeID(),
		Events:      s.events,
		InputMethod: s.bridge.IsInputMethodWindow(),
		Elements:    filter.Apply(s.readElements()),
	}
	if id, ok := s.recorder.FocusID(); ok {
		result.Focus = &id
	}
	return s.reply(result)
}

// actionData builds ActionData from tool arguments, resolving a ref against
// the consumer's tree when no id is given.
func (s *Server) actionData(request mcp.CallToolRequest) (model.ActionData, error) {
	action, err := request.RequireString("action")
	if err != nil {
		return model.ActionData{}, err
	}
	data := model.ActionData{
		Action:     action,
		RequestID:  int32(request.GetInt("request_id", 0)),
		StartIndex: int32(request.GetInt("start_index", 0)),
		EndIndex:   int32(request.GetInt("end_index", 0)),
	}

	args := request.GetArguments()
	if _, ok := args["id"]; ok {
		data.TargetID = int32(request.GetInt("id", 0))
		return data, nil
	}
	ref := request.GetString("ref", "")
	if ref == "" {
		return data, errors.New("id or ref is required")
	}
	el, err := model.FindByRef(s.readElements(), ref)
	if err != nil {
		return data, err
	}
	data.TargetID = el.ID
	return data, nil
}

func (s *Server) handlePerformAction(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.actionData(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.bridge.PerformAction(data)
	return s.reply(ActionReply{Forwarded: s.delegate.TakeActions()})
}

func (s *Server) handleActionResult(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.actionData(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()
	if _, ok := args["result"]; !ok {
		return mcp.NewToolResultError("result is required"), nil
	}
	s.bridge.NotifyActionResult(data, request.GetBool("result", false))
	return s.reply(ActionReply{Results: s.recorder.TakeActionResults()})
}

// textRect reads the optional rectangle of a text location.
func textRect(request mcp.CallToolRequest) *model.Rect {
	args := request.GetArguments()
	found := false
	for _, k := range []string{"x", "y", "w", "h"} {
		if _, ok := args[k]; ok {
			found = true
		}
	}
	if !found {
		return nil
	}
	return &model.Rect{
		X:      request.GetInt("x", 0),
		Y:      request.GetInt("y", 0),
		Width:  request.GetInt("w", 0),
		Height: request.GetInt("h", 0),
	}
}

func (s *Server) handleTextLocationResult(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.actionData(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.bridge.NotifyGetTextLocationDataResult(data, textRect(request))
	return s.reply(TextLocationReply{Locations: s.recorder.TakeTextLocations()})
}

func (s *Server) handleReset(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bridge.Reset()
	s.recorder.TakeBatches()
	s.recorder.TakeActionResults()
	s.recorder.TakeTextLocations()
	s.delegate.TakeActions()
	s.events = 0
	return s.reply(map[string]string{"destroyed": s.bridge.TreeID()})
}
