package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// Tool names as bound to pipeline stages.
const (
	ToolSearchFAQ   = "search_faq"
	ToolLookupOrder = "lookup_order"
	ToolLogAction   = "log_action"
)

// Output is the common result envelope of every knowledge tool.
type Output struct {
	Result string `json:"result"`
}

type SearchFAQInput struct {
	Query string `json:"query"`
}

type LookupOrderInput struct {
	OrderNumber string `json:"order_number"`
}

type LogActionInput struct {
	ActionType string `json:"action_type"`
	Details    string `json:"details"`
}

func createSearchFAQTool(s *KnowledgeStore) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchFAQ,
			Desc: "Search the FAQ database for answers to common questions about shipping, returns, payments, or tracking.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The customer's question or keywords to search for",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SearchFAQInput) (*Output, error) {
			return &Output{Result: s.LookupFAQ(in.Query)}, nil
		},
	)
}

func createLookupOrderTool(s *KnowledgeStore) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolLookupOrder,
			Desc: "Look up order status, tracking information, and estimated delivery using the order number.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"order_number": {
					Type:     "string",
					Desc:     "The 5-digit order number to look up (e.g. 12345)",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *LookupOrderInput) (*Output, error) {
			if strings.TrimSpace(in.OrderNumber) == "" {
				return nil, fmt.Errorf("order_number is required")
			}
			return &Output{Result: s.LookupOrder(in.OrderNumber)}, nil
		},
	)
}

func createLogActionTool(s *KnowledgeStore) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolLogAction,
			Desc: "Log actions taken during the customer interaction such as refunds, escalations, or callbacks.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"action_type": {
					Type:     "string",
					Desc:     "Type of action (e.g. refund, escalation, callback)",
					Required: true,
				},
				"details": {
					Type:     "string",
					Desc:     "Details about the action taken",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *LogActionInput) (*Output, error) {
			if strings.TrimSpace(in.ActionType) == "" {
				return nil, fmt.Errorf("action_type is required")
			}
			return &Output{Result: s.LogAction(ctx, in.ActionType, in.Details)}, nil
		},
	)
}

// GetStageTools returns every knowledge tool keyed by name.
func GetStageTools(s *KnowledgeStore) map[string]tool.InvokableTool {
	return map[string]tool.InvokableTool{
		ToolSearchFAQ:   createSearchFAQTool(s),
		ToolLookupOrder: createLookupOrderTool(s),
		ToolLogAction:   createLogActionTool(s),
	}
}
