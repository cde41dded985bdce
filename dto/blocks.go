package dto

// TextBlock is a position-tagged chunk of page text. Within a page, blocks
// are ordered by (round(Y,1), X): top to bottom, left to right. Y grows
// downward from the top of the page. Multi-line blocks keep their line
// breaks; everything else is ASCII-cleaned.
type TextBlock struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}
