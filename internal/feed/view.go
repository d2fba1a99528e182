package feed

import (
	"sort"
	"strings"

	"bio_showcase/internal/domain/models"
)

const DefaultPageSize = 12

// Matches reports whether e passes the category chip and the search text.
// Category "all" or "" passes everything; otherwise the entry's own category or
// its coarse bucket must equal it.
func Matches(e models.MediaEntry, category, search string) bool {
	return matchCategory(e, category) && matchSearch(e, strings.ToLower(strings.TrimSpace(search)))
}

func matchCategory(e models.MediaEntry, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	return e.Category == category || e.SourceType.Bucket() == category
}

// matchSearch expects needle already lower-cased.
func matchSearch(e models.MediaEntry, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{e.Title, e.Description, e.Category, string(e.SourceType)} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter keeps matching entries in their original order.
func Filter(entries []models.MediaEntry, category, search string) []models.MediaEntry {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]models.MediaEntry, 0, len(entries))
	for _, e := range entries {
		if matchCategory(e, category) && matchSearch(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

// ComputeFeed returns the first window entries of the filtered feed. A negative
// window means no limit.
func ComputeFeed(entries []models.MediaEntry, category, search string, window int) []models.MediaEntry {
	filtered := Filter(entries, category, search)
	if window < 0 || window >= len(filtered) {
		return filtered
	}
	return filtered[:window]
}

// Controller holds the filter, search and "show N of M" state of one view.
// It is not safe for concurrent use; Session serializes access.
type Controller struct {
	entries     []models.MediaEntry
	filtered    []models.MediaEntry
	category    string
	search      string
	pageSize    int
	itemsToShow int
}

func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		category:    models.CategoryAll,
		pageSize:    pageSize,
		itemsToShow: pageSize,
	}
}

// SetEntries replaces the feed snapshot and resets paging.
func (c *Controller) SetEntries(entries []models.MediaEntry) {
	c.entries = entries
	c.itemsToShow = c.pageSize
	c.refilter()
}

// SetCategory reports whether the category changed. Paging resets on change.
func (c *Controller) SetCategory(category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.CategoryAll
	}
	if category == c.category {
		return false
	}
	c.category = category
	c.itemsToShow = c.pageSize
	c.refilter()
	return true
}

// SetSearch reports whether the search text changed. Paging resets on change.
func (c *Controller) SetSearch(search string) bool {
	search = strings.TrimSpace(search)
	if search == c.search {
		return false
	}
	c.search = search
	c.itemsToShow = c.pageSize
	c.refilter()
	return true
}

// LoadMore grows the window by one page, capped at the filtered total, and
// returns the number of visible entries.
func (c *Controller) LoadMore() int {
	c.itemsToShow = min(c.itemsToShow+c.pageSize, max(len(c.filtered), c.pageSize))
	return len(c.View())
}

func (c *Controller) View() []models.MediaEntry {
	if c.itemsToShow >= len(c.filtered) {
		return c.filtered
	}
	return c.filtered[:c.itemsToShow]
}

func (c *Controller) Total() int       { return len(c.filtered) }
func (c *Controller) HasMore() bool    { return c.itemsToShow < len(c.filtered) }
func (c *Controller) Category() string { return c.category }
func (c *Controller) Search() string   { return c.search }
func (c *Controller) PageSize() int    { return c.pageSize }

func (c *Controller) refilter() {
	c.filtered = Filter(c.entries, c.category, c.search)
}

// CategoryCount is one filter chip.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Coarse   bool   `json:"coarse"`
}

// Categories lists the chip set for entries: "all", the coarse buckets present
// and every finer category, each with its entry count. Coarse chips come first
// in precedence order, finer ones alphabetically.
func Categories(entries []models.MediaEntry) []CategoryCount {
	coarse := make(map[string]int)
	fine := make(map[string]int)
	for _, e := range entries {
		bucket := e.SourceType.Bucket()
		coarse[bucket]++
		if e.Category != bucket {
			fine[e.Category]++
		}
	}

	out := []CategoryCount{{Category: models.CategoryAll, Count: len(entries), Coarse: true}}
	for _, source := range SourcePrecedence {
		if n := coarse[source.Bucket()]; n > 0 {
			out = append(out, CategoryCount{Category: source.Bucket(), Count: n, Coarse: true})
		}
	}

	names := make([]string, 0, len(fine))
	for name := range fine {
		if _, clash := coarse[name]; clash {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, CategoryCount{Category: name, Count: fine[name]})
	}

	return out
}
