package annotator

import (
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/nao1215/webdetect/internal/model"
)

// FromProto flattens a web detection message into a model.Result.
// Order is preserved; nil input or missing fields produce empty lists.
func FromProto(web *visionpb.WebDetection) *model.Result {
	result := model.NewResult()
	if web == nil {
		return result
	}

	for _, page := range web.GetPagesWithMatchingImages() {
		result.PagesWithMatchingImages = append(result.PagesWithMatchingImages, model.WebPage{
			URL: page.GetUrl(),
		})
	}

	result.FullMatchingImages = appendImages(result.FullMatchingImages, web.GetFullMatchingImages())
	result.PartialMatchingImages = appendImages(result.PartialMatchingImages, web.GetPartialMatchingImages())

	for _, entity := range web.GetWebEntities() {
		result.WebEntities = append(result.WebEntities, model.WebEntity{
			Score:       float64(entity.GetScore()),
			Description: entity.GetDescription(),
		})
	}

	return result
}

func appendImages(dst []model.WebImage, images []*visionpb.WebDetection_WebImage) []model.WebImage {
	for _, img := range images {
		dst = append(dst, model.WebImage{URL: img.GetUrl()})
	}
	return dst
}
