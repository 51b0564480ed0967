package types

import (
	"encoding/json"
	"fmt"
)

// Point is a pixel vertex of a bounding polygon
type Point struct {
	X int32
	Y int32
}

// MarshalJSON encodes the point as an [x, y] pair
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int32{p.X, p.Y})
}

// UnmarshalJSON decodes an [x, y] pair
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair [2]int32
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// Bounds is the list of vertices returned for an annotation
type Bounds []Point

// NormalizedPoint is a vertex with coordinates relative to the image size, in [0,1]
type NormalizedPoint struct {
	X float32
	Y float32
}

// MarshalJSON encodes the point as an [x, y] pair
func (p NormalizedPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float32{p.X, p.Y})
}

// UnmarshalJSON decodes an [x, y] pair
func (p *NormalizedPoint) UnmarshalJSON(data []byte) error {
	var pair [2]float32
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("normalized point: %w", err)
	}
	p.X, p.Y = pair[0], pair[1]
	return nil
}

// NormalizedBounds is the list of normalized vertices of an object annotation
type NormalizedBounds []NormalizedPoint

// Logo is a detected logo
type Logo struct {
	Logo   string `json:"logo"`
	Bounds Bounds `json:"bounds"`
}

// Face holds the likelihood names of a detected face
type Face struct {
	Anger        string `json:"anger"`
	Joy          string `json:"joy"`
	Surprise     string `json:"surprise"`
	Sorrow       string `json:"sorrow"`
	UnderExposed string `json:"under_exposed"`
	Blurred      string `json:"blurred"`
	Headwear     string `json:"headwear"`
	Bounds       Bounds `json:"bounds"`
}

// Object is a localized object
type Object struct {
	Name   string           `json:"name"`
	Score  float32          `json:"score"`
	Bounds NormalizedBounds `json:"bounds"`
}

// SafeSearch holds the likelihood names of the safe-search categories
type SafeSearch struct {
	Adult    string `json:"adult"`
	Medical  string `json:"medical"`
	Spoof    string `json:"spoof"`
	Violence string `json:"violence"`
	Racy     string `json:"racy"`
}

// WebEntity is an entity inferred from similar images on the web
type WebEntity struct {
	Description string  `json:"description"`
	Score       float32 `json:"score"`
}

// Web is the reshaped web detection. Empty groups are left out.
type Web struct {
	BestGuessLabels         []string    `json:"best_guess_label,omitempty"`
	PagesWithMatchingImages []string    `json:"pages_with_matching_images,omitempty"`
	FullMatchingImages      []string    `json:"full_matching_images,omitempty"`
	PartialMatchingImages   []string    `json:"partial_matching_images,omitempty"`
	VisuallySimilarImages   []string    `json:"visually_similar_images,omitempty"`
	WebEntities             []WebEntity `json:"web_entities,omitempty"`
}

// Block is a flattened text block of a document
type Block struct {
	Content    string  `json:"content"`
	Confidence float32 `json:"confidence"`
}

// Color is a dominant color of an image
type Color struct {
	Fraction float32 `json:"fraction"`
	Red      float32 `json:"red"`
	Green    float32 `json:"green"`
	Blue     float32 `json:"blue"`
	Hex      string  `json:"hex"`
}

// Page is the document text of one page of an annotated file
type Page struct {
	Source string  `json:"source"`
	Number int32   `json:"page"`
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}
