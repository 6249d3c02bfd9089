package literature

import "encoding/xml"

// The efetch payload is a PubmedArticleSet document with one PubmedArticle
// node per record. Only the fields the pipeline consumes are mapped.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			Title    string `xml:"ArticleTitle"`
			Abstract struct {
				Text []string `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				JournalIssue struct {
					PubDate struct {
						Year        string `xml:"Year"`
						MedlineDate string `xml:"MedlineDate"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			AuthorList struct {
				Authors []struct {
					LastName string `xml:"LastName"`
					Initials string `xml:"Initials"`
				} `xml:"Author"`
			} `xml:"AuthorList"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

const maxAuthors = 3

// parseArticles converts raw efetch XML into articles, tolerating partial
// records. A document that fails to parse at all yields zero articles rather
// than an error: literature retrieval is best-effort enrichment, and callers
// should see "no literature found" instead of a crash.
func parseArticles(raw []byte) []Article {
	var doc pubmedArticleSet
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	var articles []Article
	for _, node := range doc.Articles {
		cit := node.MedlineCitation

		// A record without both identifier and title is not a usable citation.
		if cit.PMID == "" || cit.Article.Title == "" {
			continue
		}

		abstract := ""
		if len(cit.Article.Abstract.Text) > 0 {
			abstract = cit.Article.Abstract.Text[0]
		}

		year := cit.Article.Journal.JournalIssue.PubDate.Year
		if year == "" {
			// MedlineDate is free text like "2019 Jan-Feb"; the leading four
			// characters are the year when a dedicated field is absent.
			md := cit.Article.Journal.JournalIssue.PubDate.MedlineDate
			if len(md) > 4 {
				md = md[:4]
			}
			year = md
		}

		var authors []string
		for _, a := range cit.Article.AuthorList.Authors {
			if a.LastName == "" {
				continue
			}
			name := a.LastName
			if a.Initials != "" {
				name += " " + a.Initials
			}
			authors = append(authors, name)
			if len(authors) == maxAuthors {
				break
			}
		}

		articles = append(articles, Article{
			PMID:     cit.PMID,
			Title:    cit.Article.Title,
			Abstract: abstract,
			Year:     year,
			Authors:  authors,
		})
	}

	return articles
}
