package usecase

import (
	"context"
	"log/slog"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// visualizationUsecase implements VisualizationUsecase: the glue between
// stored exchanges, the recommendation service, and the decision engine.
type visualizationUsecase struct {
	messages    domain.MessageUsecase
	recommender domain.RecommenderClient
	logger      *slog.Logger
}

// NewVisualizationUsecase creates a new VisualizationUsecase instance.
// recommender may be nil; every chart type is then left to the engine's
// default cascade.
func NewVisualizationUsecase(
	messages domain.MessageUsecase,
	recommender domain.RecommenderClient,
	logger *slog.Logger,
) domain.VisualizationUsecase {
	return &visualizationUsecase{
		messages:    messages,
		recommender: recommender,
		logger:      logger,
	}
}

func cannotVisualize(reason string) *domain.VisualizationResult {
	return &domain.VisualizationResult{CanVisualize: false, Reason: reason}
}

func (u *visualizationUsecase) VisualizeMessage(ctx context.Context, userID, messageID string) (*domain.VisualizationResult, error) {
	message, err := u.messages.GetMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if message.Failed() {
		return cannotVisualize("query did not produce a result"), nil
	}
	if message.Result.IsEmpty() {
		return cannotVisualize("result set is empty"), nil
	}

	var recommended []viz.Archetype
	if u.recommender != nil {
		rec, err := u.recommender.Recommend(ctx, message.Result, message.Question, message.Query)
		switch {
		case err != nil || rec == nil:
			// Recommendation is advisory; run the engine without it.
			u.logger.Warn("recommendation unavailable, proceeding without it",
				"error", err, "message_id", messageID)
		case !rec.ShouldVisualize:
			reason := rec.Reason
			if reason == "" {
				reason = "visualization not recommended for this result"
			}
			return cannotVisualize(reason), nil
		default:
			recommended = viz.ParseArchetypes(rec.RecommendedGraphs)
		}
	}

	return u.run(message.Result, recommended), nil
}

func (u *visualizationUsecase) Preview(ctx context.Context, table viz.Table, recommended []string) *domain.VisualizationResult {
	_ = ctx
	if table.IsEmpty() {
		return cannotVisualize("result set is empty")
	}
	return u.run(table, viz.ParseArchetypes(recommended))
}

// run executes the engine and renders every selected spec.
func (u *visualizationUsecase) run(table viz.Table, recommended []viz.Archetype) *domain.VisualizationResult {
	specs := viz.Select(table, recommended)
	if len(specs) == 0 {
		return cannotVisualize("no chart type fits this result")
	}

	result := &domain.VisualizationResult{CanVisualize: true}
	for _, spec := range specs {
		result.Charts = append(result.Charts, domain.ChartBlock{
			Spec: spec,
			SVG:  viz.Render(spec),
		})
	}
	return result
}
