// Package normalize reshapes Cloud Vision annotations into the plain result
// types of package types.
package normalize

import (
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/menta2k/gvision/pkg/types"
)

// likelihoodNames is indexed by the visionpb.Likelihood enum value
var likelihoodNames = []string{
	"UNKNOWN",
	"VERY_UNLIKELY",
	"UNLIKELY",
	"POSSIBLE",
	"LIKELY",
	"VERY_LIKELY",
}

// LikelihoodName returns the name of a likelihood, or UNKNOWN when out of range
func LikelihoodName(l visionpb.Likelihood) string {
	if l < 0 || int(l) >= len(likelihoodNames) {
		return likelihoodNames[0]
	}
	return likelihoodNames[l]
}

// Bounds converts the pixel vertices of a polygon
func Bounds(poly *visionpb.BoundingPoly) types.Bounds {
	vertices := poly.GetVertices()
	bounds := make(types.Bounds, 0, len(vertices))
	for _, v := range vertices {
		bounds = append(bounds, types.Point{X: v.GetX(), Y: v.GetY()})
	}
	return bounds
}

// NormalizedBounds converts the normalized vertices of a polygon
func NormalizedBounds(poly *visionpb.BoundingPoly) types.NormalizedBounds {
	vertices := poly.GetNormalizedVertices()
	bounds := make(types.NormalizedBounds, 0, len(vertices))
	for _, v := range vertices {
		bounds = append(bounds, types.NormalizedPoint{X: v.GetX(), Y: v.GetY()})
	}
	return bounds
}

// Descriptions returns the description of every entity, in order
func Descriptions(entities []*visionpb.EntityAnnotation) []string {
	results := make([]string, 0, len(entities))
	for _, e := range entities {
		results = append(results, e.GetDescription())
	}
	return results
}

// Logos reshapes logo annotations
func Logos(logos []*visionpb.EntityAnnotation) []types.Logo {
	results := make([]types.Logo, 0, len(logos))
	for _, l := range logos {
		results = append(results, types.Logo{
			Logo:   l.GetDescription(),
			Bounds: Bounds(l.GetBoundingPoly()),
		})
	}
	return results
}

// Face maps the likelihood fields of a face annotation to their names
func Face(face *visionpb.FaceAnnotation) types.Face {
	return types.Face{
		Anger:        LikelihoodName(face.GetAngerLikelihood()),
		Joy:          LikelihoodName(face.GetJoyLikelihood()),
		Surprise:     LikelihoodName(face.GetSurpriseLikelihood()),
		Sorrow:       LikelihoodName(face.GetSorrowLikelihood()),
		UnderExposed: LikelihoodName(face.GetUnderExposedLikelihood()),
		Blurred:      LikelihoodName(face.GetBlurredLikelihood()),
		Headwear:     LikelihoodName(face.GetHeadwearLikelihood()),
		Bounds:       Bounds(face.GetBoundingPoly()),
	}
}

// Faces reshapes face annotations
func Faces(faces []*visionpb.FaceAnnotation) []types.Face {
	results := make([]types.Face, 0, len(faces))
	for _, f := range faces {
		results = append(results, Face(f))
	}
	return results
}

// Objects reshapes localized object annotations
func Objects(objects []*visionpb.LocalizedObjectAnnotation) []types.Object {
	results := make([]types.Object, 0, len(objects))
	for _, o := range objects {
		results = append(results, types.Object{
			Name:   o.GetName(),
			Score:  o.GetScore(),
			Bounds: NormalizedBounds(o.GetBoundingPoly()),
		})
	}
	return results
}

// SafeSearch maps the safe-search categories to likelihood names
func SafeSearch(safe *visionpb.SafeSearchAnnotation) types.SafeSearch {
	return types.SafeSearch{
		Adult:    LikelihoodName(safe.GetAdult()),
		Medical:  LikelihoodName(safe.GetMedical()),
		Spoof:    LikelihoodName(safe.GetSpoof()),
		Violence: LikelihoodName(safe.GetViolence()),
		Racy:     LikelihoodName(safe.GetRacy()),
	}
}

// Web reshapes a web detection
func Web(web *visionpb.WebDetection) types.Web {
	var result types.Web
	for _, label := range web.GetBestGuessLabels() {
		result.BestGuessLabels = append(result.BestGuessLabels, label.GetLabel())
	}
	for _, page := range web.GetPagesWithMatchingImages() {
		result.PagesWithMatchingImages = append(result.PagesWithMatchingImages, page.GetUrl())
	}
	result.FullMatchingImages = imageURLs(web.GetFullMatchingImages())
	result.PartialMatchingImages = imageURLs(web.GetPartialMatchingImages())
	result.VisuallySimilarImages = imageURLs(web.GetVisuallySimilarImages())
	for _, entity := range web.GetWebEntities() {
		result.WebEntities = append(result.WebEntities, types.WebEntity{
			Description: entity.GetDescription(),
			Score:       entity.GetScore(),
		})
	}
	return result
}

func imageURLs(images []*visionpb.WebDetection_WebImage) []string {
	var urls []string
	for _, img := range images {
		urls = append(urls, img.GetUrl())
	}
	return urls
}

// Blocks flattens the text blocks of every page. The block content is the
// concatenation of its symbols with one space after each word.
func Blocks(annotation *visionpb.TextAnnotation) []types.Block {
	var results []types.Block
	for _, page := range annotation.GetPages() {
		results = append(results, PageBlocks(page)...)
	}
	return results
}

// PageBlocks flattens the text blocks of a single page
func PageBlocks(page *visionpb.Page) []types.Block {
	results := make([]types.Block, 0, len(page.GetBlocks()))
	for _, block := range page.GetBlocks() {
		var sb strings.Builder
		for _, paragraph := range block.GetParagraphs() {
			for _, word := range paragraph.GetWords() {
				for _, symbol := range word.GetSymbols() {
					sb.WriteString(symbol.GetText())
				}
				sb.WriteByte(' ')
			}
		}
		results = append(results, types.Block{
			Content:    sb.String(),
			Confidence: block.GetConfidence(),
		})
	}
	return results
}

// Colors reshapes the dominant colors of an image
func Colors(props *visionpb.ImageProperties) []types.Color {
	infos := props.GetDominantColors().GetColors()
	results := make([]types.Color, 0, len(infos))
	for _, info := range infos {
		c := info.GetColor()
		results = append(results, types.Color{
			Fraction: info.GetPixelFraction(),
			Red:      c.GetRed(),
			Green:    c.GetGreen(),
			Blue:     c.GetBlue(),
			Hex:      Hex(c.GetRed(), c.GetGreen(), c.GetBlue()),
		})
	}
	return results
}

// Hex formats 0-255 color components as #rrggbb
func Hex(r, g, b float32) string {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	return c.Clamped().Hex()
}

// CropHints flattens the vertices of every crop hint
func CropHints(annotation *visionpb.CropHintsAnnotation) types.Bounds {
	var bounds types.Bounds
	for _, hint := range annotation.GetCropHints() {
		bounds = append(bounds, Bounds(hint.GetBoundingPoly())...)
	}
	return bounds
}

// FirstCropHint returns the vertices of the first crop hint, if any
func FirstCropHint(annotation *visionpb.CropHintsAnnotation) (types.Bounds, bool) {
	hints := annotation.GetCropHints()
	if len(hints) == 0 {
		return nil, false
	}
	return Bounds(hints[0].GetBoundingPoly()), true
}
