package literature

// Article is one bibliographic record retrieved from PubMed. PMID and Title
// are always present; records missing either are discarded at parse time.
// Abstract and Year may be empty. Authors holds at most three names.
type Article struct {
	PMID     string   `json:"pmid"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract"`
	Year     string   `json:"year"`
	Authors  []string `json:"authors"`
}
