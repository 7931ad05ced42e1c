package readability

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/go-shiori/dom"
)

// metadata is the subset of §3's Result record the metadata extractor
// can populate before the scoring pipeline runs.
type metadata struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	PublishedTime string
}

// jsonLDArticle is the shape getJSONLD reads out of a Schema.org
// Article-family block.
type jsonLDArticle struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	PublishedTime string
	ok            bool
}

// extractMetadata implements §4.12: read JSON-LD (unless disabled), then
// scan <meta> tags, and merge with the fallback order JSON-LD → dc: →
// dcterm: → og: → weibo:...: → bare → twitter: → parsely-....
func (r *Readability) extractMetadata(doc *Node) metadata {
	values := scanMetaTags(doc)

	htmlTitle := getArticleTitle(doc)

	var ld jsonLDArticle
	if !r.opts.DisableJSONLD {
		ld = r.getJSONLD(doc, htmlTitle)
	}

	md := metadata{}

	md.Title = pick(ld.ok, ld.Title, values, "title")
	if md.Title == "" {
		md.Title = htmlTitle
	}

	md.Byline = pick(ld.ok, ld.Byline, values, "author", "creator")
	md.Excerpt = pick(ld.ok, ld.Excerpt, values, "description")
	md.SiteName = pick(ld.ok, ld.SiteName, values, "site_name")
	md.PublishedTime = pick(ld.ok, ld.PublishedTime, values, "published_time", "pub-date")

	md.Title = unescapeEntities(md.Title)
	md.Byline = unescapeEntities(md.Byline)
	md.Excerpt = unescapeEntities(md.Excerpt)
	md.SiteName = unescapeEntities(md.SiteName)
	md.PublishedTime = unescapeEntities(md.PublishedTime)

	return md
}

// pick implements the §4.12 fallback order for one logical field, which
// may be backed by more than one meta key (e.g. "author"/"creator").
func pick(haveLD bool, ldValue string, values map[string]string, keys ...string) string {
	if haveLD && ldValue != "" {
		return ldValue
	}
	prefixes := []string{"dc:", "dcterm:", "og:", "weibo:article:", "weibo:webpage:", "", "twitter:", "parsely-"}
	for _, prefix := range prefixes {
		for _, key := range keys {
			if v, ok := values[prefix+key]; ok && v != "" {
				return v
			}
		}
	}
	return ""
}

// scanMetaTags builds the normalized value map §4.12 describes: keys are
// lowercased, spaces removed, and dots converted to colons.
func scanMetaTags(doc *Node) map[string]string {
	values := make(map[string]string)
	for _, meta := range dom.GetElementsByTagName(doc, "meta") {
		content := getAttr(meta, "content")
		if content == "" {
			continue
		}

		if property := getAttr(meta, "property"); property != "" {
			for _, p := range strings.Fields(property) {
				if m := metaPropertyRegex.FindStringSubmatch(p); m != nil {
					key := normalizeMetaKey(m[1] + ":" + m[2])
					values[key] = strings.TrimSpace(content)
				}
			}
		}

		if name := getAttr(meta, "name"); name != "" {
			if metaNameRegex.MatchString(name) {
				values[normalizeMetaKey(strings.TrimSpace(name))] = strings.TrimSpace(content)
			}
		}
	}
	return values
}

func normalizeMetaKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, ".", ":")
	return key
}

// getJSONLD implements §4.12's JSON-LD half: scans every
// <script type="application/ld+json">, strips CDATA wrappers, parses as
// JSON, and validates @context/@type. Any parse error is tolerated: it is
// logged (when Options.Debug is on and Options.Logger is set) and that
// script is skipped, per §7's
// "tolerated anomalies".
func (r *Readability) getJSONLD(doc *Node, htmlTitle string) jsonLDArticle {
	for _, script := range dom.GetElementsByTagName(doc, "script") {
		if getAttr(script, "type") != "application/ld+json" {
			continue
		}
		raw := dom.TextContent(script)
		raw = stripCDATA(raw)

		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			r.debugf("json-ld: skipping unparsable block: %v", err)
			continue
		}

		article, ok := jsonLDToArticle(parsed, htmlTitle)
		if ok {
			return article
		}
	}
	return jsonLDArticle{}
}

func stripCDATA(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/*")
	s = strings.TrimSuffix(s, "*/")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<![CDATA[")
	s = strings.TrimSuffix(s, "]]>")
	return strings.TrimSpace(s)
}

func jsonLDToArticle(parsed map[string]any, htmlTitle string) (jsonLDArticle, bool) {
	ctx, _ := parsed["@context"].(string)
	if !jsonLDContextRegex.MatchString(ctx) {
		return jsonLDArticle{}, false
	}

	obj := parsed
	typ, hasType := stringField(parsed, "@type")
	if !hasType {
		if graph, ok := parsed["@graph"].([]any); ok {
			for _, entry := range graph {
				if m, ok := entry.(map[string]any); ok {
					if t, ok2 := stringField(m, "@type"); ok2 && jsonLDArticleTypeRegex.MatchString(t) {
						obj = m
						typ = t
						hasType = true
						break
					}
				}
			}
		}
	}
	if !hasType || !jsonLDArticleTypeRegex.MatchString(typ) {
		return jsonLDArticle{}, false
	}

	name, _ := stringField(obj, "name")
	headline, _ := stringField(obj, "headline")
	title := preferTitleBySimilarity(name, headline, htmlTitle)

	byline := authorNames(obj["author"])
	excerpt, _ := stringField(obj, "description")

	siteName := ""
	if pub, ok := obj["publisher"].(map[string]any); ok {
		siteName, _ = stringField(pub, "name")
	}

	published, _ := stringField(obj, "datePublished")

	return jsonLDArticle{
		Title:         title,
		Byline:        byline,
		Excerpt:       excerpt,
		SiteName:      siteName,
		PublishedTime: published,
		ok:            true,
	}, true
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func authorNames(v any) string {
	switch t := v.(type) {
	case map[string]any:
		if name, ok := stringField(t, "name"); ok {
			return name
		}
	case []any:
		var names []string
		for _, entry := range t {
			if m, ok := entry.(map[string]any); ok {
				if name, ok2 := stringField(m, "name"); ok2 && name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, ", ")
	case string:
		return t
	}
	return ""
}

// unescapeEntities implements §4.12's "HTML-entity-unescape every string
// field" step via the standard library, which already follows the
// HTML5 spec for numeric references and invalid code points (→ U+FFFD).
func unescapeEntities(s string) string {
	return html.UnescapeString(s)
}

// preferTitleBySimilarity implements the JSON-LD title preference rule
// of §4.12 example 5: when JSON-LD supplies both name and headline, and
// an HTML title is available, prefer the JSON-LD field whose
// text-similarity to the HTML title exceeds 0.75; otherwise prefer name.
func preferTitleBySimilarity(name, headline, htmlTitle string) string {
	if name != "" && headline != "" {
		if textSimilarity(htmlTitle, name) > 0.75 {
			return name
		}
		if textSimilarity(htmlTitle, headline) > 0.75 {
			return headline
		}
		return name
	}
	if name != "" {
		return name
	}
	return headline
}
