package importer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tobias/plan-reconciler/internal/types"
)

// Layout identifies how a directory page presents its exercises.
type Layout string

const (
	// LayoutTable is a page with one exercise per table row
	LayoutTable Layout = "table"
	// LayoutCards is a page with one exercise per card element
	LayoutCards Layout = "cards"
	// LayoutUnknown is a page with no recognized exercise markup
	LayoutUnknown Layout = "unknown"
)

const (
	tableSelector = "table.exercise-table, table#exercises, table[data-exercise-table]"
	cardSelector  = ".exercise-card, li.exercise, div[data-exercise-id]"
)

// DetectLayout identifies the directory layout from the page markup.
func DetectLayout(doc *goquery.Document) Layout {
	if doc.Find(tableSelector).Length() > 0 {
		return LayoutTable
	}
	if doc.Find(cardSelector).Length() > 0 {
		return LayoutCards
	}
	return LayoutUnknown
}

// ParseDirectory extracts catalog entries from one directory page.
// Table and card layouts are recognized; anything else is an error.
func ParseDirectory(htmlContent string) ([]types.CatalogExercise, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ImportError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	var entries []types.CatalogExercise
	switch DetectLayout(doc) {
	case LayoutTable:
		entries = parseTable(doc.Find(tableSelector).First())
	case LayoutCards:
		entries = parseCards(doc)
	default:
		return nil, &ImportError{
			Message: "no exercise table or cards recognized in page",
		}
	}

	if len(entries) == 0 {
		return nil, &ImportError{
			Message: "no exercise entries found in page",
		}
	}
	return entries, nil
}

// headerKey maps a column header label to the entry field it feeds.
func headerKey(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "name", "exercise":
		return "name"
	case "muscles", "muscle", "main muscles":
		return "muscles"
	case "equipment":
		return "equipment"
	case "tier":
		return "tier"
	case "difficulty", "level":
		return "difficulty"
	case "rank", "popularity":
		return "popularity"
	case "aliases", "also known as":
		return "aliases"
	default:
		return ""
	}
}

func parseTable(table *goquery.Selection) []types.CatalogExercise {
	// Map columns by header label; tables without a header row use the
	// conventional column order.
	columns := make(map[int]string)
	table.Find("tr th").Each(func(i int, th *goquery.Selection) {
		if key := headerKey(th.Text()); key != "" {
			columns[i] = key
		}
	})
	if table.Find("tr th").Length() == 0 {
		columns = map[int]string{
			0: "name", 1: "muscles", 2: "equipment",
			3: "tier", 4: "difficulty", 5: "popularity",
		}
	}

	var entries []types.CatalogExercise
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return // header row
		}
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		var e types.CatalogExercise
		e.ID = entryID(row)
		cells.Each(func(i int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			switch columns[i] {
			case "name":
				e.Name = text
			case "muscles":
				e.MainMuscles = splitList(text)
			case "equipment":
				e.Equipment = text
			case "tier":
				e.Tier = normalizeTier(text)
			case "difficulty":
				e.Difficulty = normalizeDifficulty(text)
			case "popularity":
				e.Popularity = parseRank(text)
			case "aliases":
				e.AlternativeNames = splitList(text)
			}
		})
		if e.ID == "" {
			e.ID = idFromLink(row)
		}
		if e.Name == "" {
			return
		}
		entries = append(entries, e)
	})
	return entries
}

func parseCards(doc *goquery.Document) []types.CatalogExercise {
	var entries []types.CatalogExercise
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		var e types.CatalogExercise
		e.ID = entryID(card)
		if e.ID == "" {
			e.ID = idFromLink(card)
		}
		e.Name = firstText(card, ".exercise-name, .name, h2, h3")
		e.Equipment = firstText(card, ".equipment")
		e.MainMuscles = cardList(card, ".muscles, .muscle")
		e.AlternativeNames = cardList(card, ".aliases, .alias")
		e.Tier = normalizeTier(cardField(card, "tier"))
		e.Difficulty = normalizeDifficulty(cardField(card, "difficulty"))

		rank := cardField(card, "rank")
		if rank == "" {
			rank = cardField(card, "popularity")
		}
		e.Popularity = parseRank(rank)

		if e.Name == "" {
			return
		}
		entries = append(entries, e)
	})
	return entries
}

// entryID reads the identifier attribute off a row or card element.
func entryID(s *goquery.Selection) string {
	if id, ok := s.Attr("data-exercise-id"); ok {
		return strings.TrimSpace(id)
	}
	return ""
}

// idFromLink pulls an identifier out of a detail link such as
// /exercises/crl_0042.
func idFromLink(s *goquery.Selection) string {
	href, ok := s.Find("a[href]").First().Attr("href")
	if !ok {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	parent := strings.ToLower(segments[len(segments)-2])
	if parent != "exercise" && parent != "exercises" {
		return ""
	}
	return segments[len(segments)-1]
}

// cardField reads a card attribute from data-<field> or a .<field> child.
func cardField(card *goquery.Selection, field string) string {
	if v, ok := card.Attr("data-" + field); ok {
		return strings.TrimSpace(v)
	}
	return firstText(card, "."+field)
}

func firstText(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// cardList collects list items for a selector, descending into <li>
// children when present so container text is not picked up whole.
func cardList(card *goquery.Selection, selector string) []string {
	seen := make(map[string]bool)
	var items []string
	add := func(text string) {
		for _, item := range splitList(text) {
			key := strings.ToLower(item)
			if !seen[key] {
				seen[key] = true
				items = append(items, item)
			}
		}
	}
	card.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if lis := s.Find("li"); lis.Length() > 0 {
			lis.Each(func(_ int, li *goquery.Selection) {
				add(li.Text())
			})
			return
		}
		add(s.Text())
	})
	return items
}

func splitList(text string) []string {
	var items []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func normalizeTier(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case types.TierFoundational:
		return types.TierFoundational
	case types.TierStandard:
		return types.TierStandard
	case types.TierVariety:
		return types.TierVariety
	default:
		return ""
	}
}

func normalizeDifficulty(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case types.DifficultyBeginner:
		return types.DifficultyBeginner
	case types.DifficultyIntermediate:
		return types.DifficultyIntermediate
	case types.DifficultyAdvanced:
		return types.DifficultyAdvanced
	default:
		return ""
	}
}

// parseRank reads a popularity rank, tolerating a leading #.
func parseRank(raw string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ExtractPageLinks finds further directory pages linked from a page:
// pagination links plus rel=next, same-domain only, resolved to
// absolute URLs, deduplicated, with the page itself excluded.
func ExtractPageLinks(htmlContent string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &ImportError{
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &ImportError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ImportError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	selfURL := *base
	selfURL.Fragment = ""
	self := strings.TrimSuffix(selfURL.String(), "/")

	linkSet := make(map[string]bool)
	links := make([]string, 0)

	doc.Find(".pagination a[href], nav.pages a[href], a[rel='next']").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			// Skip malformed URLs
			return
		}

		// Resolve relative URLs
		absoluteURL := base.ResolveReference(linkURL)

		// Filter same-domain links only
		if absoluteURL.Host != base.Host {
			return
		}

		// Normalize URL (remove fragment, trim trailing slash)
		absoluteURL.Fragment = ""
		urlString := strings.TrimSuffix(absoluteURL.String(), "/")

		if urlString == self || linkSet[urlString] {
			return
		}
		linkSet[urlString] = true
		links = append(links, urlString)
	})

	return links, nil
}
