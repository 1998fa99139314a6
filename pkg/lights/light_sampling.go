package lights

import "github.com/DarkThrone/go-pbrt/pkg/core"

// SampleOneLight uniformly selects one light and samples it for direct
// lighting. The returned sample's PDF folds in the selection probability so
// it can be used directly for Monte Carlo weighting.
func SampleOneLight(lightList []Light, ref core.Interaction, sampler core.Sampler) (LightSample, Light, bool) {
	if len(lightList) == 0 {
		return LightSample{}, nil, false
	}

	index := int(sampler.Get1D() * float64(len(lightList)))
	if index == len(lightList) {
		index--
	}
	selected := lightList[index]

	sample := selected.Sample(ref, sampler.Get2D())
	sample.PDF /= float64(len(lightList))

	return sample, selected, true
}

// CalculateLightPDF calculates the combined density of sampling a direction
// from ref under uniform light selection. Delta lights report zero density
// and therefore never contribute, which is what suppresses their MIS weight
// for BSDF-driven strategies.
func CalculateLightPDF(lightList []Light, ref core.Interaction, direction core.Vec3) float64 {
	if len(lightList) == 0 {
		return 0.0
	}

	selectionPDF := 1.0 / float64(len(lightList))
	totalPDF := 0.0
	for _, light := range lightList {
		totalPDF += light.PDF(ref, direction) * selectionPDF
	}
	return totalPDF
}
