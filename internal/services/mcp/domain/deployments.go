package domain

import (
	"context"
	"fmt"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// DeploymentClient is the slice of the craps API the deployment tool reads from.
type DeploymentClient interface {
	GetDeployment(ctx context.Context, in *crapsv1.GetDeploymentRequest, opts ...grpc.CallOption) (*crapsv1.DeploymentResponse, error)
}

// DeploymentGetInput is the deployment_get tool input.
type DeploymentGetInput struct {
	DeploymentID string `json:"deployment_id" jsonschema:"deployment identifier"`
}

// DeploymentGetResult is the deployment_get tool output.
type DeploymentGetResult struct {
	DeploymentID     string `json:"deployment_id" jsonschema:"deployment identifier"`
	Authority        string `json:"authority" jsonschema:"account allowed to administer the deployment"`
	Frozen           bool   `json:"frozen" jsonschema:"whether new games and joins are blocked"`
	OracleProgram    string `json:"oracle_program" jsonschema:"expected randomness program identity"`
	OracleSigner     string `json:"oracle_signer" jsonschema:"expected randomness signer identity"`
	Treasury         string `json:"treasury" jsonschema:"account receiving tax and residuals"`
	TaxBps           uint32 `json:"tax_bps" jsonschema:"house tax in basis points"`
	JoinTimeoutTicks uint64 `json:"join_timeout_ticks" jsonschema:"ticks before an unjoined game can be canceled"`
	RollTimeoutTicks uint64 `json:"roll_timeout_ticks" jsonschema:"ticks before a stalled roll can be forfeited"`
	MaxFaders        uint32 `json:"max_faders" jsonschema:"maximum fader slots per game"`
	MaxRollRetries   uint32 `json:"max_roll_retries" jsonschema:"roll retries allowed per game"`
}

// DeploymentGetTool defines the deployment_get tool.
func DeploymentGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "deployment_get",
		Description: "Returns a craps deployment's authority, freeze flag, and configuration",
	}
}

// DeploymentGetHandler reads one deployment.
func DeploymentGetHandler(client DeploymentClient) mcp.ToolHandlerFor[DeploymentGetInput, DeploymentGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeploymentGetInput) (*mcp.CallToolResult, DeploymentGetResult, error) {
		if err := requireInput(input.DeploymentID, "deployment_id"); err != nil {
			return nil, DeploymentGetResult{}, err
		}
		callContext, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, DeploymentGetResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer callContext.Cancel()

		response, err := client.GetDeployment(callContext.RunCtx, &crapsv1.GetDeploymentRequest{
			DeploymentID: strings.TrimSpace(input.DeploymentID),
		})
		if err != nil {
			return nil, DeploymentGetResult{}, fmt.Errorf("deployment get failed: %w", err)
		}
		if response == nil || response.Deployment == nil {
			return nil, DeploymentGetResult{}, fmt.Errorf("deployment get response is missing")
		}
		deployment := response.Deployment
		return nil, DeploymentGetResult{
			DeploymentID:     deployment.DeploymentID,
			Authority:        deployment.Authority,
			Frozen:           deployment.Frozen,
			OracleProgram:    deployment.Config.OracleProgram,
			OracleSigner:     deployment.Config.OracleSigner,
			Treasury:         deployment.Config.Treasury,
			TaxBps:           deployment.Config.TaxBps,
			JoinTimeoutTicks: deployment.Config.JoinTimeoutTicks,
			RollTimeoutTicks: deployment.Config.RollTimeoutTicks,
			MaxFaders:        deployment.Config.MaxFaders,
			MaxRollRetries:   deployment.Config.MaxRollRetries,
		}, nil
	}
}
