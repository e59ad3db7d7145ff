package analytics

import (
	"strings"
	"time"

	"github.com/ruralhealth/connect/backend/internal/models"
)

// FilterEvents returns the events matching every set criterion of the filter,
// keeping their order. The end date is extended to the end of its day.
func FilterEvents(events []models.TimelineEvent, filter models.TimelineFilter) []models.TimelineEvent {
	categories := make(map[models.TimelineCategory]bool, len(filter.Categories))
	for _, c := range filter.Categories {
		categories[c] = true
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.TimelineEvent, 0, len(events))
	for _, e := range events {
		if len(categories) > 0 && !categories[e.Category] {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(EndOfDay(*filter.EndDate)) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesSearch reports whether the lower-cased term occurs in the title,
// description or any string metadata value
func matchesSearch(e models.TimelineEvent, term string) bool {
	if strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) {
		return true
	}
	for _, v := range e.Metadata {
		if s, ok := v.String(); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// GroupByDay buckets events by calendar day in loc (nil means UTC), in
// first-seen key order
func GroupByDay(events []models.TimelineEvent, loc *time.Location) []models.EventGroup {
	return groupBy(events, DateLayout, loc)
}

// GroupByMonth buckets events by YYYY-MM in loc (nil means UTC), in
// first-seen key order
func GroupByMonth(events []models.TimelineEvent, loc *time.Location) []models.EventGroup {
	return groupBy(events, MonthLayout, loc)
}

func groupBy(events []models.TimelineEvent, layout string, loc *time.Location) []models.EventGroup {
	loc = dayLocation(loc)
	groups := make([]models.EventGroup, 0)
	index := make(map[string]int)
	for _, e := range events {
		key := e.Date.In(loc).Format(layout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.EventGroup{Key: key})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

// FindRelatedEvents resolves the event's RelatedTo ids against events in
// the order they are listed. Unknown ids are skipped.
func FindRelatedEvents(event models.TimelineEvent, events []models.TimelineEvent) []models.TimelineEvent {
	byID := make(map[string]models.TimelineEvent, len(events))
	for _, e := range events {
		if _, exists := byID[e.ID]; !exists {
			byID[e.ID] = e
		}
	}

	related := make([]models.TimelineEvent, 0, len(event.RelatedTo))
	for _, id := range event.RelatedTo {
		if e, ok := byID[id]; ok {
			related = append(related, e)
		}
	}
	return related
}

// FindEvent returns the event with the given id
func FindEvent(events []models.TimelineEvent, id string) (models.TimelineEvent, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return models.TimelineEvent{}, false
}
