package dto

import (
	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// PreviewRequest runs the chart engine over ad-hoc rows. Data is a JSON
// array of row objects; RecommendedGraphs optionally pins chart types in
// priority order.
type PreviewRequest struct {
	Data              viz.Table `json:"data"`
	RecommendedGraphs []string  `json:"recommended_graphs"`
}

// ChartResponse is one selected chart: its field bindings plus the SVG
// document.
type ChartResponse struct {
	Type     string `json:"type"`
	XKey     string `json:"x_key,omitempty"`
	YKey     string `json:"y_key,omitempty"`
	NameKey  string `json:"name_key,omitempty"`
	ValueKey string `json:"value_key,omitempty"`
	SVG      string `json:"svg"`
}

// VisualizationResponse is the engine verdict for one result set.
type VisualizationResponse struct {
	CanVisualize bool             `json:"can_visualize"`
	Reason       string           `json:"reason,omitempty"`
	Charts       []*ChartResponse `json:"charts,omitempty"`
}

// ToVisualizationResponse converts domain.VisualizationResult to its DTO
func ToVisualizationResponse(result *domain.VisualizationResult) *VisualizationResponse {
	resp := &VisualizationResponse{
		CanVisualize: result.CanVisualize,
		Reason:       result.Reason,
	}
	for _, chart := range result.Charts {
		resp.Charts = append(resp.Charts, &ChartResponse{
			Type:     string(chart.Spec.Type),
			XKey:     chart.Spec.XKey,
			YKey:     chart.Spec.YKey,
			NameKey:  chart.Spec.NameKey,
			ValueKey: chart.Spec.ValueKey,
			SVG:      chart.SVG,
		})
	}
	return resp
}
