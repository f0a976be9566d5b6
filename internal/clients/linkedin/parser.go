package linkedin

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/linkedscout/linkedscout/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// extractor is one named strategy for pulling a field out of a listing
// container. Strategies for a field are tried in order until one yields a
// non-empty value, so a missing attribute never invalidates the record.
type extractor struct {
	name    string
	extract func(card *goquery.Selection) string
}

func textOf(selector string) func(*goquery.Selection) string {
	return func(card *goquery.Selection) string {
		return strings.TrimSpace(card.Find(selector).First().Text())
	}
}

func firstNonEmpty(card *goquery.Selection, chain []extractor) string {
	for _, e := range chain {
		if value := e.extract(card); value != "" {
			return value
		}
	}
	return ""
}

var urnIDPattern = regexp.MustCompile(`(\d+)$`)
var viewLinkPattern = regexp.MustCompile(`/jobs/view/[^/]*?(\d+)`)

// Identity comes from the source's own reference scheme, never fabricated:
// the entity URN attribute first, the detail-page link as fallback.
var identityExtractors = []extractor{
	{"entity-urn", func(card *goquery.Selection) string {
		urn, _ := card.Attr("data-entity-urn")
		if urn == "" {
			urn, _ = card.Find("[data-entity-urn]").First().Attr("data-entity-urn")
		}
		if match := urnIDPattern.FindStringSubmatch(urn); match != nil {
			return match[1]
		}
		return ""
	}},
	{"view-link", func(card *goquery.Selection) string {
		href, _ := card.Find("a.base-card__full-link, a[href*='/jobs/view/']").First().Attr("href")
		if match := viewLinkPattern.FindStringSubmatch(href); match != nil {
			return match[1]
		}
		return ""
	}},
}

var titleExtractors = []extractor{
	{"base-card-title", textOf("h3.base-search-card__title")},
	{"job-card-title", textOf("h3.job-search-card__title")},
	{"screen-reader", textOf("span.sr-only")},
}

var companyExtractors = []extractor{
	{"subtitle-link", textOf("h4.base-search-card__subtitle a")},
	{"nested-link", textOf("a.hidden-nested-link")},
	{"subtitle", textOf("h4.base-search-card__subtitle")},
}

var locationExtractors = []extractor{
	{"card-location", textOf("span.job-search-card__location")},
	{"card-metadata", textOf("span.base-search-card__metadata")},
}

var salaryExtractors = []extractor{
	{"salary-info", textOf("span.job-search-card__salary-info")},
	{"base-salary", textOf("span.base-search-card__salary")},
}

var jobTypeExtractors = []extractor{
	{"employment-type", textOf("span.job-search-card__employment-type")},
}

// Listing containers are located by structural role first (the entity URN
// attribute every card carries), with class-based selectors as fallback for
// markup variants that omit it.
// Ordered: list items wrapping a card (the attribute marks the card even
// when class names shift), then bare card fragments, then the legacy class.
var containerSelectors = []string{
	"li:has([data-entity-urn]), li:has(div.base-card)",
	"div[data-entity-urn], div.base-card",
	"li.jobs-search__result-card",
}

// Parser extracts job listings from one page of raw markup.
type Parser struct {
	now func() time.Time
}

func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse never fails the whole page on a single malformed record: containers
// missing identity or title are counted as anomalies and skipped. A page
// where nothing parsed is flagged as a last-page signal, since that is also
// what a silent markup change looks like.
func (p *Parser) Parse(markup []byte) (models.PageResult, error) {

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return models.PageResult{LastPage: true}, err
	}

	cards := selectContainers(doc)

	result := models.PageResult{}
	seen := make(map[string]struct{})

	// One reference time per page: equal relative-age labels must
	// normalize to the same instant.
	now := p.now()

	cards.Each(func(_ int, card *goquery.Selection) {
		listing, ok := p.parseCard(card, now)
		if !ok {
			result.Anomalies++
			metrics.ParseAnomalies.Inc()
			return
		}
		if _, dup := seen[listing.ID]; dup {
			return
		}
		seen[listing.ID] = struct{}{}
		result.Listings = append(result.Listings, listing)
	})

	if len(result.Listings) == 0 || cards.Length() < PageSize {
		result.LastPage = true
	}

	return result, nil
}

func selectContainers(doc *goquery.Document) *goquery.Selection {
	for _, selector := range containerSelectors {
		if cards := doc.Find(selector); cards.Length() > 0 {
			return cards
		}
	}
	return doc.Find(containerSelectors[0])
}

func (p *Parser) parseCard(card *goquery.Selection, now time.Time) (models.JobListing, bool) {

	id := firstNonEmpty(card, identityExtractors)
	title := firstNonEmpty(card, titleExtractors)
	if id == "" || title == "" {
		log.Debug("skipping listing container missing identity or title")
		return models.JobListing{}, false
	}

	listing := models.JobListing{
		ID:        id,
		Title:     title,
		Company:   firstNonEmpty(card, companyExtractors),
		Location:  firstNonEmpty(card, locationExtractors),
		URL:       jobViewURL + id,
		Salary:    firstNonEmpty(card, salaryExtractors),
		JobType:   firstNonEmpty(card, jobTypeExtractors),
		ScrapedAt: now,
	}

	listing.PostedRaw, listing.PostedAt = parsePostedTime(card, now)
	listing.WorkModel = classifyWorkModel(card, listing.Location)

	return listing, true
}

func parsePostedTime(card *goquery.Selection, now time.Time) (string, *time.Time) {

	timeElem := card.Find("time").First()
	if timeElem.Length() == 0 {
		return "", nil
	}

	raw, hasAttr := timeElem.Attr("datetime")
	if !hasAttr || raw == "" {
		raw = strings.TrimSpace(timeElem.Text())
	}

	return raw, parseRecency(raw, now)
}

func classifyWorkModel(card *goquery.Selection, location string) models.WorkModel {

	if strings.Contains(strings.ToLower(location), "remote") {
		return models.Remote
	}
	if strings.Contains(strings.ToLower(location), "hybrid") {
		return models.Hybrid
	}

	if card.Find("span.job-search-card__remote-label, span.remote-badge").Length() > 0 {
		return models.Remote
	}

	return ""
}
