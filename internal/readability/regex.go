package readability

import "regexp"

// All patterns here are compiled once at package init and are read-only
// for the lifetime of the process; concurrent Parse calls may share them
// freely (§5, "regex tables are immutable and may be shared").
var (
	unlikelyCandidatesRegex = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
	maybeCandidateRegex     = regexp.MustCompile(`(?i)and|article|body|column|main|shadow`)

	positiveClassRegex = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
	negativeClassRegex = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)

	bylineRegex = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

	shareElementsRegex = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)

	defaultAllowedVideoRegex = regexp.MustCompile(`(?i)//(www\.)?(dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq)\.com`)

	whitespaceOnlyRegex = regexp.MustCompile(`^\s*$`)
	normalizeWhitespaceRegex = regexp.MustCompile(`\s{2,}`)
	tokenizeRegex       = regexp.MustCompile(`\W+`)
	sentenceEndRegex    = regexp.MustCompile(`\.( |$)`)

	titleSeparatorRegex = regexp.MustCompile(`\s[\|\-\\/>»]\s`)
	titleHierarchySepRegex = regexp.MustCompile(`[\|\-\\/>»]`)

	jsonLDContextRegex = regexp.MustCompile(`^https?://schema\.org/?$`)
	jsonLDArticleTypeRegex = regexp.MustCompile(`^(Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference)$`)

	metaPropertyRegex = regexp.MustCompile(`(?i)^\s*(?:(article|dc|dcterm|og|twitter)\s*:\s*)(author|creator|description|published_time|title|site_name)\s*$`)
	metaNameRegex     = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|parsely|weibo:(?:article|webpage))[-.:])?(author|creator|pub-date|description|title|site_name)\s*$`)

	base64DataURLRegex  = regexp.MustCompile(`^data:\s*([^\s;,]+)\s*;\s*base64\s*,`)
	srcsetCandidateRegex = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)\s+\d`)
	singleImageURLRegex  = regexp.MustCompile(`(?i)^\s*\S+\.(jpg|jpeg|png|webp)\S*\s*$`)

	srcsetEntryRegex = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)
)

// commaLikeChars lists the comma variants §4.5 pass 2 counts when scoring
// a paragraph's split count: U+002C, U+060C, U+FE50, U+FE10, U+FE11,
// U+2E41, U+2E34, U+2E32, U+FF0C.
var commaLikeChars = []rune{
	',', '،', '﹐', '︐', '︑',
	'⹁', '⸴', '⸲', '，',
}

func countCommaLike(s string) int {
	n := 0
	for _, r := range s {
		for _, c := range commaLikeChars {
			if r == c {
				n++
				break
			}
		}
	}
	return n
}

// unlikelyRoles is the ARIA role set §4.5 pass 1 strips outright.
var unlikelyRoles = map[string]bool{
	"menu": true, "menubar": true, "complementary": true,
	"navigation": true, "alert": true, "alertdialog": true, "dialog": true,
}

// phrasingTags is the fixed tag set §4.3 treats as always phrasing.
var phrasingTags = map[string]bool{
	"abbr": true, "audio": true, "b": true, "bdo": true, "br": true,
	"button": true, "cite": true, "code": true, "data": true,
	"datalist": true, "dfn": true, "em": true, "embed": true, "i": true,
	"img": true, "input": true, "kbd": true, "label": true, "mark": true,
	"math": true, "meter": true, "noscript": true, "object": true,
	"output": true, "progress": true, "q": true, "ruby": true,
	"samp": true, "script": true, "select": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true,
	"textarea": true, "time": true, "var": true, "wbr": true,
}

// conditionalPhrasingTags is §4.3's {a, del, ins}: phrasing iff every
// child is itself phrasing.
var conditionalPhrasingTags = map[string]bool{
	"a": true, "del": true, "ins": true,
}

// blockTags is the block-level set §4.5 pass 1 checks for "no block-level
// descendant" before deciding whether to rename a div to <p>.
var blockTags = map[string]bool{
	"blockquote": true, "dl": true, "div": true, "img": true,
	"ol": true, "p": true, "pre": true, "table": true, "ul": true,
}

// scorableTags is §4.5 pass 1's collectable-as-scorable set.
var scorableTags = map[string]bool{
	"section": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "p": true, "td": true, "pre": true,
}

// emptyStructuralTags is the set §4.5 pass 1 removes when empty
// (is-element-without-content).
var emptyStructuralTags = map[string]bool{
	"div": true, "section": true, "header": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// presentationalAttrs is §4.6 step 1's stripped attribute set.
var presentationalAttrs = []string{
	"align", "background", "bgcolor", "border", "cellpadding",
	"cellspacing", "frame", "hspace", "rules", "style", "valign", "vspace",
}

// dimensionAllowedTags is §4.6 step 1's exception set for width/height.
var dimensionAllowedTags = map[string]bool{
	"table": true, "th": true, "td": true, "hr": true, "pre": true,
}

// headingTags is used by §4.6.1's headingDensity computation.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// textDensityTags is used by §4.6.1's textDensity computation.
var textDensityTags = map[string]bool{
	"span": true, "li": true, "td": true,
	"blockquote": true, "dl": true, "div": true, "img": true,
	"ol": true, "p": true, "pre": true, "table": true, "ul": true,
}

// siblingAllowedTags is §4.5.3's set that avoids a rename-to-div when a
// sibling is appended to the article subtree.
var siblingAllowedTags = map[string]bool{
	"div": true, "article": true, "section": true, "p": true,
}

// elementInitBase is §4.5.1's base-by-tag table.
var elementInitBase = map[string]float64{
	"div": 5,
	"pre": 3, "td": 3, "blockquote": 3,
	"address": -3, "ol": -3, "ul": -3, "dl": -3, "dd": -3, "dt": -3,
	"li": -3, "form": -3,
	"h1": -5, "h2": -5, "h3": -5, "h4": -5, "h5": -5, "h6": -5, "th": -5,
}

// imageExtRegex recognizes the image extensions the lazy-image repair
// (§4.9) attribute scan looks for.
var imageExtRegex = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)`)
