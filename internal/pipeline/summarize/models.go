package summarize

// Reference is one citation in the final report. URL is derived
// deterministically from the PMID.
type Reference struct {
	Title string `json:"title"`
	PMID  string `json:"pmid"`
	Year  string `json:"year"`
	URL   string `json:"url"`
}

// Summary is the patient-facing synthesis of the retrieved literature.
// References always covers every retrieved article, including those that
// contributed no abstract to the narrative context.
type Summary struct {
	ArticlesFound int         `json:"articles_found"`
	Summary       string      `json:"summary"`
	References    []Reference `json:"references"`
}
