package normalize

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/google/go-cmp/cmp"
	colorpb "google.golang.org/genproto/googleapis/type/color"

	"github.com/menta2k/gvision/pkg/types"
)

func poly(xy ...int32) *visionpb.BoundingPoly {
	p := &visionpb.BoundingPoly{}
	for i := 0; i+1 < len(xy); i += 2 {
		p.Vertices = append(p.Vertices, &visionpb.Vertex{X: xy[i], Y: xy[i+1]})
	}
	return p
}

func TestLikelihoodName(t *testing.T) {
	tests := map[visionpb.Likelihood]string{
		visionpb.Likelihood_UNKNOWN:       "UNKNOWN",
		visionpb.Likelihood_VERY_UNLIKELY: "VERY_UNLIKELY",
		visionpb.Likelihood_UNLIKELY:      "UNLIKELY",
		visionpb.Likelihood_POSSIBLE:      "POSSIBLE",
		visionpb.Likelihood_LIKELY:        "LIKELY",
		visionpb.Likelihood_VERY_LIKELY:   "VERY_LIKELY",
		visionpb.Likelihood(42):           "UNKNOWN",
		visionpb.Likelihood(-1):           "UNKNOWN",
	}
	for l, want := range tests {
		if got := LikelihoodName(l); got != want {
			t.Errorf("LikelihoodName(%d) = %s, expected %s", l, got, want)
		}
	}
}

func TestBounds(t *testing.T) {
	got := Bounds(poly(1, 2, 10, 2, 10, 20, 1, 20))
	want := types.Bounds{{X: 1, Y: 2}, {X: 10, Y: 2}, {X: 10, Y: 20}, {X: 1, Y: 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}

	if got := Bounds(nil); len(got) != 0 {
		t.Errorf("Expected empty bounds for nil polygon, got %v", got)
	}
}

func TestFaces(t *testing.T) {
	faces := []*visionpb.FaceAnnotation{{
		BoundingPoly:           poly(0, 0, 5, 0, 5, 5, 0, 5),
		AngerLikelihood:        visionpb.Likelihood_VERY_UNLIKELY,
		JoyLikelihood:          visionpb.Likelihood_VERY_LIKELY,
		SurpriseLikelihood:     visionpb.Likelihood_UNLIKELY,
		SorrowLikelihood:       visionpb.Likelihood_POSSIBLE,
		UnderExposedLikelihood: visionpb.Likelihood_LIKELY,
		BlurredLikelihood:      visionpb.Likelihood_UNKNOWN,
		HeadwearLikelihood:     visionpb.Likelihood_VERY_UNLIKELY,
	}}

	want := []types.Face{{
		Anger:        "VERY_UNLIKELY",
		Joy:          "VERY_LIKELY",
		Surprise:     "UNLIKELY",
		Sorrow:       "POSSIBLE",
		UnderExposed: "LIKELY",
		Blurred:      "UNKNOWN",
		Headwear:     "VERY_UNLIKELY",
		Bounds:       types.Bounds{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}},
	}}
	if diff := cmp.Diff(want, Faces(faces)); diff != "" {
		t.Errorf("Faces mismatch (-want +got):\n%s", diff)
	}
}

func TestObjects(t *testing.T) {
	objects := []*visionpb.LocalizedObjectAnnotation{{
		Name:  "Bicycle",
		Score: 0.9,
		BoundingPoly: &visionpb.BoundingPoly{NormalizedVertices: []*visionpb.NormalizedVertex{
			{X: 0.1, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.8, Y: 0.9}, {X: 0.1, Y: 0.9},
		}},
	}}

	want := []types.Object{{
		Name:   "Bicycle",
		Score:  0.9,
		Bounds: types.NormalizedBounds{{X: 0.1, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.8, Y: 0.9}, {X: 0.1, Y: 0.9}},
	}}
	if diff := cmp.Diff(want, Objects(objects)); diff != "" {
		t.Errorf("Objects mismatch (-want +got):\n%s", diff)
	}
}

func TestSafeSearch(t *testing.T) {
	got := SafeSearch(&visionpb.SafeSearchAnnotation{
		Adult:    visionpb.Likelihood_VERY_UNLIKELY,
		Spoof:    visionpb.Likelihood_LIKELY,
		Medical:  visionpb.Likelihood_UNLIKELY,
		Violence: visionpb.Likelihood_POSSIBLE,
		Racy:     visionpb.Likelihood_VERY_LIKELY,
	})
	want := types.SafeSearch{
		Adult:    "VERY_UNLIKELY",
		Medical:  "UNLIKELY",
		Spoof:    "LIKELY",
		Violence: "POSSIBLE",
		Racy:     "VERY_LIKELY",
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	if got := SafeSearch(nil); got.Adult != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for missing annotation, got %s", got.Adult)
	}
}

func TestWeb(t *testing.T) {
	web := &visionpb.WebDetection{
		BestGuessLabels:         []*visionpb.WebDetection_WebLabel{{Label: "eiffel tower"}},
		PagesWithMatchingImages: []*visionpb.WebDetection_WebPage{{Url: "https://a.example/page"}},
		FullMatchingImages:      []*visionpb.WebDetection_WebImage{{Url: "https://a.example/full.jpg"}},
		VisuallySimilarImages: []*visionpb.WebDetection_WebImage{
			{Url: "https://b.example/1.jpg"},
			{Url: "https://b.example/2.jpg"},
		},
		WebEntities: []*visionpb.WebDetection_WebEntity{{Description: "Tower", Score: 0.7}},
	}

	want := types.Web{
		BestGuessLabels:         []string{"eiffel tower"},
		PagesWithMatchingImages: []string{"https://a.example/page"},
		FullMatchingImages:      []string{"https://a.example/full.jpg"},
		VisuallySimilarImages:   []string{"https://b.example/1.jpg", "https://b.example/2.jpg"},
		WebEntities:             []types.WebEntity{{Description: "Tower", Score: 0.7}},
	}
	got := Web(web)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Web mismatch (-want +got):\n%s", diff)
	}
	if got.PartialMatchingImages != nil {
		t.Errorf("Expected no partial matches, got %v", got.PartialMatchingImages)
	}
}

func word(symbols ...string) *visionpb.Word {
	w := &visionpb.Word{}
	for _, s := range symbols {
		w.Symbols = append(w.Symbols, &visionpb.Symbol{Text: s})
	}
	return w
}

func TestBlocks(t *testing.T) {
	annotation := &visionpb.TextAnnotation{
		Pages: []*visionpb.Page{
			{Blocks: []*visionpb.Block{
				{
					Confidence: 0.98,
					Paragraphs: []*visionpb.Paragraph{
						{Words: []*visionpb.Word{word("H", "i"), word("t", "h", "e", "r", "e")}},
						{Words: []*visionpb.Word{word("!")}},
					},
				},
			}},
			{Blocks: []*visionpb.Block{
				{Confidence: 0.5, Paragraphs: []*visionpb.Paragraph{{Words: []*visionpb.Word{word("p", "2")}}}},
			}},
		},
	}

	want := []types.Block{
		{Content: "Hi there ! ", Confidence: 0.98},
		{Content: "p2 ", Confidence: 0.5},
	}
	if diff := cmp.Diff(want, Blocks(annotation)); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}

	if got := Blocks(nil); len(got) != 0 {
		t.Errorf("Expected no blocks for nil annotation, got %v", got)
	}
}

func TestColors(t *testing.T) {
	props := &visionpb.ImageProperties{
		DominantColors: &visionpb.DominantColorsAnnotation{Colors: []*visionpb.ColorInfo{
			{Color: &colorpb.Color{Red: 255, Green: 0, Blue: 0}, PixelFraction: 0.25},
			{Color: &colorpb.Color{Red: 0, Green: 128, Blue: 255}, PixelFraction: 0.5},
		}},
	}

	want := []types.Color{
		{Fraction: 0.25, Red: 255, Green: 0, Blue: 0, Hex: "#ff0000"},
		{Fraction: 0.5, Red: 0, Green: 128, Blue: 255, Hex: "#0080ff"},
	}
	if diff := cmp.Diff(want, Colors(props)); diff != "" {
		t.Errorf("Colors mismatch (-want +got):\n%s", diff)
	}
}

func TestCropHints(t *testing.T) {
	annotation := &visionpb.CropHintsAnnotation{CropHints: []*visionpb.CropHint{
		{BoundingPoly: poly(0, 0, 9, 0, 9, 9, 0, 9)},
		{BoundingPoly: poly(1, 1, 2, 1)},
	}}

	got := CropHints(annotation)
	if len(got) != 6 {
		t.Fatalf("Expected 6 flattened vertices, got %d", len(got))
	}

	first, ok := FirstCropHint(annotation)
	if !ok || len(first) != 4 || first[2] != (types.Point{X: 9, Y: 9}) {
		t.Errorf("Unexpected first crop hint %v", first)
	}

	if _, ok := FirstCropHint(nil); ok {
		t.Error("Expected no crop hint for nil annotation")
	}
}

func TestLogosAndDescriptions(t *testing.T) {
	entities := []*visionpb.EntityAnnotation{
		{Description: "Google", BoundingPoly: poly(1, 1, 4, 1, 4, 3, 1, 3)},
		{Description: "Android"},
	}

	if diff := cmp.Diff([]string{"Google", "Android"}, Descriptions(entities)); diff != "" {
		t.Errorf("Descriptions mismatch (-want +got):\n%s", diff)
	}

	logos := Logos(entities)
	if len(logos) != 2 || logos[0].Logo != "Google" || len(logos[0].Bounds) != 4 {
		t.Errorf("Unexpected logos %+v", logos)
	}
	if len(logos[1].Bounds) != 0 {
		t.Errorf("Expected empty bounds for logo without polygon, got %v", logos[1].Bounds)
	}
}
