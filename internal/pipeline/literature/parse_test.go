package literature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleXML(pmid, title, abstract, year, medlineDate string, authors string) string {
	pubDate := ""
	if year != "" {
		pubDate += "<Year>" + year + "</Year>"
	}
	if medlineDate != "" {
		pubDate += "<MedlineDate>" + medlineDate + "</MedlineDate>"
	}

	abstractBlock := ""
	if abstract != "" {
		abstractBlock = "<Abstract><AbstractText>" + abstract + "</AbstractText></Abstract>"
	}

	return `<PubmedArticle>
		<MedlineCitation>
			<PMID>` + pmid + `</PMID>
			<Article>
				<Journal><JournalIssue><PubDate>` + pubDate + `</PubDate></JournalIssue></Journal>
				<ArticleTitle>` + title + `</ArticleTitle>
				` + abstractBlock + `
				<AuthorList>` + authors + `</AuthorList>
			</Article>
		</MedlineCitation>
	</PubmedArticle>`
}

func wrapSet(articles ...string) []byte {
	doc := `<?xml version="1.0"?><PubmedArticleSet>`
	for _, a := range articles {
		doc += a
	}
	doc += `</PubmedArticleSet>`
	return []byte(doc)
}

func TestParseArticles_FullRecord(t *testing.T) {
	raw := wrapSet(articleXML("12345", "Migraine management", "A systematic review.", "2021", "",
		`<Author><LastName>Smith</LastName><Initials>JA</Initials></Author>
		 <Author><LastName>Jones</LastName><Initials>B</Initials></Author>`))

	articles := parseArticles(raw)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "12345", a.PMID)
	assert.Equal(t, "Migraine management", a.Title)
	assert.Equal(t, "A systematic review.", a.Abstract)
	assert.Equal(t, "2021", a.Year)
	assert.Equal(t, []string{"Smith JA", "Jones B"}, a.Authors)
}

func TestParseArticles_DiscardsRecordsWithoutIdentifierOrTitle(t *testing.T) {
	raw := wrapSet(
		articleXML("", "Orphan title", "", "2020", "", ""),
		articleXML("99999", "", "", "2020", "", ""),
		articleXML("11111", "Kept", "", "2020", "", ""),
	)

	articles := parseArticles(raw)
	require.Len(t, articles, 1)
	assert.Equal(t, "11111", articles[0].PMID)
}

func TestParseArticles_MedlineDateFallback(t *testing.T) {
	raw := wrapSet(articleXML("222", "Seasonal study", "", "", "2019 Jan-Feb", ""))

	articles := parseArticles(raw)
	require.Len(t, articles, 1)
	assert.Equal(t, "2019", articles[0].Year)
}

func TestParseArticles_MissingAbstractBecomesEmpty(t *testing.T) {
	raw := wrapSet(articleXML("333", "No abstract here", "", "2018", "", ""))

	articles := parseArticles(raw)
	require.Len(t, articles, 1)
	assert.Equal(t, "", articles[0].Abstract)
}

func TestParseArticles_AuthorHandling(t *testing.T) {
	raw := wrapSet(articleXML("444", "Author edge cases", "", "2022", "",
		`<Author><LastName>First</LastName><Initials>A</Initials></Author>
		 <Author><Initials>X</Initials></Author>
		 <Author><LastName>Second</LastName></Author>
		 <Author><LastName>Third</LastName><Initials>C</Initials></Author>
		 <Author><LastName>Fourth</LastName><Initials>D</Initials></Author>`))

	articles := parseArticles(raw)
	require.Len(t, articles, 1)

	// Collective names without a LastName are skipped; the list is capped at
	// three contributors.
	assert.Equal(t, []string{"First A", "Second", "Third C"}, articles[0].Authors)
}

func TestParseArticles_MalformedDocumentYieldsNothing(t *testing.T) {
	assert.Nil(t, parseArticles([]byte(`<PubmedArticleSet><PubmedArticle>`)))
	assert.Nil(t, parseArticles([]byte(`not xml at all`)))
}

func TestParseArticles_EmptySet(t *testing.T) {
	assert.Empty(t, parseArticles(wrapSet()))
}
