package upstream

import "github.com/rogeecn/nchc-wrapper/pkg/types"

// Models is the static catalog served by GET /models. There is no live
// discovery against the upstream.
var Models = []types.ModelInfo{
	{
		ID:          types.DefaultModel,
		Name:        types.DefaultModel,
		Description: types.DefaultModel,
	},
}

func ListModels() []types.ModelInfo {
	result := make([]types.ModelInfo, len(Models))
	copy(result, Models)
	return result
}

// otherModelLabel stands in for any model outside the catalog in metric labels.
const otherModelLabel = "other"

// ModelLabel maps model to a metric label. Callers pick the model freely, so
// only catalog entries get their own series.
func ModelLabel(model string) string {
	for _, m := range Models {
		if m.ID == model {
			return model
		}
	}
	return otherModelLabel
}
