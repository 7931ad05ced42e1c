package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"extract-html-scraper/internal/config"
	"extract-html-scraper/internal/models"
	"extract-html-scraper/internal/readability"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// ArticleExtractor runs the readability engine over fetched HTML and
// maps its Result onto the service's response shape. The goquery-based
// methods below stay as the fallback used when the readability engine
// can't produce a usable article, and supply the description when the
// engine yields no excerpt.
type ArticleExtractor struct {
	sanitizer *bluemonday.Policy
}

func NewArticleExtractor() *ArticleExtractor {
	// UGCPolicy keeps basic article markup (headings, links, lists,
	// emphasis) while stripping scripts and event handlers from the
	// serialized article content.
	policy := bluemonday.UGCPolicy()

	return &ArticleExtractor{
		sanitizer: policy,
	}
}

// ExtractArticle parses html with the readability engine and falls
// back to the goquery heuristics in ExtractArticleSimple when parsing
// the document or extracting an article fails.
func (ae *ArticleExtractor) ExtractArticle(rawHTML, baseURL string) models.ScrapeResponse {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ae.ExtractArticleSimple(rawHTML, baseURL)
	}

	opts := config.DefaultReadabilityOptions()
	if base, err := url.Parse(baseURL); err == nil {
		opts.BaseURI = base
	}

	parser, err := readability.New(doc, opts)
	if err != nil {
		return ae.ExtractArticleSimple(rawHTML, baseURL)
	}

	result, err := parser.Parse()
	if err != nil {
		return ae.ExtractArticleSimple(rawHTML, baseURL)
	}

	content, _ := result.Content.(string)
	content = ae.sanitizer.Sanitize(content)

	imageExtractor := NewImageExtractor()
	images := imageExtractor.ExtractImagesFromHTML(rawHTML, baseURL)

	description := result.Excerpt
	if description == "" {
		if doc2, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML)); err == nil {
			description = ae.extractDescription(doc2)
		}
	}

	return models.ScrapeResponse{
		Title:         result.Title,
		Byline:        result.Byline,
		Description:   description,
		Excerpt:       result.Excerpt,
		Content:       content,
		TextContent:   result.TextContent,
		Length:        result.Length,
		SiteName:      result.SiteName,
		Lang:          result.Lang,
		Dir:           result.Dir,
		PublishedTime: result.PublishedTime,
		Images:        images,
	}
}

// ExtractArticleMetadataOnly runs only metadata extraction (no
// candidate scoring), for callers that only need title/byline/site name
// and want to skip the scoring pipeline's cost. With extraction off the
// engine returns no excerpt, so Description and Excerpt are empty.
func (ae *ArticleExtractor) ExtractArticleMetadataOnly(rawHTML, baseURL string) (models.ScrapeResponse, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return models.ScrapeResponse{}, fmt.Errorf("parsing document: %w", err)
	}

	opts := config.DefaultReadabilityOptions()
	opts.Extraction = false
	if base, err := url.Parse(baseURL); err == nil {
		opts.BaseURI = base
	}

	parser, err := readability.New(doc, opts)
	if err != nil {
		return models.ScrapeResponse{}, err
	}

	result, err := parser.Parse()
	if err != nil {
		return models.ScrapeResponse{}, err
	}

	return models.ScrapeResponse{
		Title:         result.Title,
		Byline:        result.Byline,
		SiteName:      result.SiteName,
		Lang:          result.Lang,
		PublishedTime: result.PublishedTime,
		Description:   result.Excerpt,
		Excerpt:       result.Excerpt,
		Images:        []string{},
	}, nil
}

// extractTitle extracts the page title with fallback strategies
func (ae *ArticleExtractor) extractTitle(doc *goquery.Document) string {
	var title string

	// Try Open Graph title first
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		if property, exists := s.Attr("property"); exists && property == OGTitle {
			if content, exists := s.Attr("content"); exists {
				title = strings.TrimSpace(content)
			}
		}
	})

	// Try Twitter card title
	if title == "" {
		doc.Find("meta").Each(func(i int, s *goquery.Selection) {
			if name, exists := s.Attr("name"); exists && name == TwitterTitle {
				if content, exists := s.Attr("content"); exists {
					title = strings.TrimSpace(content)
				}
			}
		})
	}

	// Try h1 tag
	if title == "" {
		doc.Find("h1").First().Each(func(i int, s *goquery.Selection) {
			title = strings.TrimSpace(s.Text())
		})
	}

	// Try title tag as last resort
	if title == "" {
		doc.Find("title").Each(func(i int, s *goquery.Selection) {
			title = strings.TrimSpace(s.Text())
		})
	}

	return ae.sanitizeText(title)
}

// extractDescription extracts the page description with fallback strategies
func (ae *ArticleExtractor) extractDescription(doc *goquery.Document) string {
	var description string

	// Try Open Graph description first
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		if property, exists := s.Attr("property"); exists && property == OGDescription {
			if content, exists := s.Attr("content"); exists {
				description = strings.TrimSpace(content)
			}
		}
	})

	// Try Twitter card description
	if description == "" {
		doc.Find("meta").Each(func(i int, s *goquery.Selection) {
			if name, exists := s.Attr("name"); exists && name == TwitterDesc {
				if content, exists := s.Attr("content"); exists {
					description = strings.TrimSpace(content)
				}
			}
		})
	}

	// Try meta description
	if description == "" {
		doc.Find("meta").Each(func(i int, s *goquery.Selection) {
			if name, exists := s.Attr("name"); exists && name == MetaDesc {
				if content, exists := s.Attr("content"); exists {
					description = strings.TrimSpace(content)
				}
			}
		})
	}

	// Try to extract from first paragraph
	if description == "" {
		description = ExtractDescriptionFromParagraph(doc)
	}

	return ae.sanitizeText(description)
}

// sanitizeText sanitizes plain-text metadata fields (titles,
// descriptions) with the strict half of the sanitizer's allowance:
// any markup collapses to its text content.
func (ae *ArticleExtractor) sanitizeText(text string) string {
	if text == "" {
		return ""
	}

	sanitized := bluemonday.StrictPolicy().Sanitize(text)
	sanitized = strings.TrimSpace(sanitized)
	sanitized = strings.ReplaceAll(sanitized, DoubleSpace, SingleSpace)
	sanitized = strings.ReplaceAll(sanitized, TripleNewline, DoubleNewline)

	return sanitized
}

// ExtractArticleSimple is the goquery-based fast path that
// ExtractArticle falls back to when the readability engine can't parse
// or score the document.
func (ae *ArticleExtractor) ExtractArticleSimple(rawHTML, baseURL string) models.ScrapeResponse {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return models.ScrapeResponse{
			Images: []string{},
		}
	}

	title := ae.extractTitle(doc)
	description := ae.extractDescription(doc)

	content := ""
	contentElement := FindContentContainer(doc)
	content = ExtractTextFromElements(contentElement, TextElements)
	if content == "" {
		content = ExtractFallbackText(contentElement)
	}
	content = CleanWhitespace(content)

	imageExtractor := NewImageExtractor()
	images := imageExtractor.ExtractImagesFromHTML(rawHTML, baseURL)

	return models.ScrapeResponse{
		Title:       ae.sanitizeText(title),
		Description: ae.sanitizeText(description),
		Excerpt:     ae.sanitizeText(description),
		Content:     ae.sanitizeText(content),
		TextContent: content,
		Length:      len(content),
		Images:      images,
	}
}
