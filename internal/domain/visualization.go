package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// ChartBlock is one rendered chart: the bound spec plus its SVG document.
type ChartBlock struct {
	Spec viz.ChartSpec
	SVG  string
}

// VisualizationResult is the engine verdict for one result set. When
// CanVisualize is false, Reason says why and Charts is empty.
type VisualizationResult struct {
	CanVisualize bool
	Reason       string
	Charts       []ChartBlock
}

// VisualizationUsecase runs stored or ad-hoc result sets through the
// decision engine.
type VisualizationUsecase interface {
	// VisualizeMessage fetches the stored result rows, asks the
	// recommendation service, and runs the engine. Recommendation failures
	// degrade to an empty recommended list.
	VisualizeMessage(ctx context.Context, userID, messageID string) (*VisualizationResult, error)

	// Preview runs the engine over caller-supplied rows without touching
	// persistence or the recommendation service.
	Preview(ctx context.Context, table viz.Table, recommended []string) *VisualizationResult
}
