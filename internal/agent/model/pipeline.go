package model

import (
	"fmt"
	"strings"
)

// Category is the classifier's verdict for an inquiry.
type Category string

const (
	CategoryOrder Category = "order"
	CategoryFAQ   Category = "faq"
)

// Mode selects the pipeline variant.
type Mode string

const (
	ModeFast Mode = "fast"
	ModeFull Mode = "full"
)

// ParseMode accepts "fast" or "full" in any case; anything else falls back to def.
func ParseMode(v string, def Mode) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(v))) {
	case ModeFast:
		return ModeFast
	case ModeFull:
		return ModeFull
	default:
		return def
	}
}

type StageRole string

const (
	RoleClassifier  StageRole = "classifier"
	RoleResearcher  StageRole = "researcher"
	RoleOrderLookup StageRole = "order-lookup"
	RoleResolver    StageRole = "resolver"
	RoleReviewer    StageRole = "reviewer"
)

type StageID string

const (
	StageGreet       StageID = "greet"
	StageResearch    StageID = "research"
	StageOrderLookup StageID = "order_lookup"
	StageOrderCheck  StageID = "order_check"
	StageResolve     StageID = "resolve"
	StageReview      StageID = "review"
)

// Stage is one role-specialised completion within a pipeline.
type Stage struct {
	ID   StageID
	Role StageRole
	// Instructions is a Go template rendered against StagePromptData.
	Instructions string
	DependsOn    []StageID
	// Tool names the knowledge or action tool resolved before the completion; empty for none.
	Tool string
}

// Pipeline is an ordered chain of stages built for a single inquiry.
type Pipeline struct {
	Mode     Mode
	Category Category
	Stages   []Stage
}

// Validate checks the chain invariant: ids are unique and every dependency
// names a strictly earlier stage.
func (p Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return fmt.Errorf("pipeline has no stages")
	}
	seen := make(map[StageID]struct{}, len(p.Stages))
	for i, st := range p.Stages {
		if st.ID == "" {
			return fmt.Errorf("stage %d has no id", i)
		}
		for _, dep := range st.DependsOn {
			if _, ok := seen[dep]; !ok {
				return fmt.Errorf("stage %q depends on %q which does not precede it", st.ID, dep)
			}
		}
		if _, dup := seen[st.ID]; dup {
			return fmt.Errorf("duplicate stage id %q", st.ID)
		}
		seen[st.ID] = struct{}{}
	}
	return nil
}

// Final returns the last stage, whose output is the reply.
func (p Pipeline) Final() Stage {
	return p.Stages[len(p.Stages)-1]
}

type StageResult struct {
	Stage  StageID   `json:"stage"`
	Role   StageRole `json:"role"`
	Output string    `json:"output"`
}

// RunResult is what a successful pipeline run hands back.
type RunResult struct {
	FinalText string
	Results   map[StageID]StageResult
	// Order lists stage ids in execution order.
	Order        []StageID
	TotalCostUSD float64
}

// PipelineInput is the per-run input threaded through every stage node.
type PipelineInput struct {
	Message string
	// Context is the formatted excerpt of recent turns.
	Context string
}

// PipelineState stores per-run state for the eino chain.
// It is registered as graph local state and is only touched inside
// compose.ProcessState, which serialises access.
type PipelineState struct {
	Results      map[StageID]StageResult
	Order        []StageID
	TotalCostUSD float64
}

// QueryInput represents one inbound chat message.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	// Mode overrides the configured pipeline variant when set.
	Mode Mode `json:"mode,omitempty"`
}

// ChatMetadata describes how a reply was produced.
type ChatMetadata struct {
	Category   Category `json:"category"`
	Mode       Mode     `json:"mode"`
	StageCount int      `json:"stage_count"`
	Status     string   `json:"status"`
	CostUSD    float64  `json:"cost_usd"`
}

type ChatResult struct {
	Response  string       `json:"response"`
	Metadata  ChatMetadata `json:"metadata"`
	SessionID string       `json:"session_id"`
}

// StageError reports the stage at which a pipeline run halted.
type StageError struct {
	Stage StageID
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
