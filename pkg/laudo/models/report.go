package models

// Image is a photo placed in the document. An empty Path renders an empty cell.
type Image struct {
	// Path is the photo location relative to the report working directory.
	Path string `json:"path,omitempty"`
	// Width is the display width in centimetres; height follows the aspect ratio.
	Width float64 `json:"width"`
}

// Empty reports whether the image has nothing to render.
func (i Image) Empty() bool {
	return i.Path == ""
}

// LocationRow pairs two location photos with full captions.
type LocationRow struct {
	Col1Img     Image  `json:"col1_img"`
	Col1Caption string `json:"col1_caption"`
	Col2Img     Image  `json:"col2_img"`
	Col2Caption string `json:"col2_caption"`
}

// PhotoRow pairs two inspection or site photos with their figure numbers.
// A nil figure renders as an empty cell.
type PhotoRow struct {
	Col1Img Image `json:"col1_img"`
	Col1Fig *int  `json:"col1_fig,omitempty"`
	Col2Img Image `json:"col2_img"`
	Col2Fig *int  `json:"col2_fig,omitempty"`
}

// ElementRow is one line of a room's element table.
type ElementRow struct {
	Element    string `json:"elemento"`
	Finish     string `json:"acabamento"`
	Condition  string `json:"conservacao"`
	Occurrence string `json:"ocorrencia"`
	Location   string `json:"local"`
	Figures    string `json:"figuras"`
}

// Ambient is one inspected room with its caption range and element table.
type Ambient struct {
	Name    string       `json:"nome"`
	Figures string       `json:"ref_figuras"`
	Rows    []ElementRow `json:"linhas"`
}
