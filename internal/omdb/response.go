package omdb

// NoPoster is the value OMDb puts in Poster (and most other optional
// fields) when nothing is available.
const NoPoster = "N/A"

// Response flag values.
const (
	ResponseTrue  = "True"
	ResponseFalse = "False"
)

// SearchResponse is the payload of a title search (?s=).
type SearchResponse struct {
	Search       []Record `json:"Search,omitempty"`
	TotalResults string   `json:"totalResults,omitempty"`
	Error        string   `json:"Error,omitempty"`
	Response     string   `json:"Response"`
}

// Found reports whether the provider answered positively.
func (r *SearchResponse) Found() bool {
	return r.Response == ResponseTrue
}

// Record is one entry of a search result list.
type Record struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// TitleResponse is the payload of a single-title lookup (?i=).
type TitleResponse struct {
	ImdbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Type     string `json:"Type"`
	Poster   string `json:"Poster"`
	Error    string `json:"Error,omitempty"`
	Response string `json:"Response"`
}

// Found reports whether the provider answered positively.
func (r *TitleResponse) Found() bool {
	return r.Response == ResponseTrue
}
