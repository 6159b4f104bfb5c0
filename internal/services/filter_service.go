package services

import (
	"sort"
	"strings"
	"time"

	"smart-share-todo/internal/domain"
)

// filterServiceImpl implements the FilterService interface
type filterServiceImpl struct{}

// NewFilterService creates a new FilterService instance
func NewFilterService() FilterService {
	return &filterServiceImpl{}
}

// Matches reports whether task passes every active predicate of filter.
// Shared is not consulted.
func (f *filterServiceImpl) Matches(task domain.Task, filter domain.TaskFilter, now time.Time) bool {
	switch filter.Status {
	case domain.StatusFilterActive:
		if task.Completed {
			return false
		}
	case domain.StatusFilterCompleted:
		if !task.Completed {
			return false
		}
	case domain.StatusFilterOverdue:
		if !task.IsOverdue(now) {
			return false
		}
	}

	if filter.Priority != "" && filter.Priority != domain.PriorityFilterAll &&
		domain.Priority(filter.Priority) != task.Priority {
		return false
	}

	if filter.Search != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(filter.Search)) {
		return false
	}

	return true
}

// Filter keeps the matching tasks in their original order
func (f *filterServiceImpl) Filter(tasks []domain.Task, filter domain.TaskFilter, now time.Time) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task, filter, now) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// Counts computes badge totals over the whole list
func (f *filterServiceImpl) Counts(tasks []domain.Task, now time.Time) domain.TaskCounts {
	counts := domain.TaskCounts{All: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			counts.Completed++
		} else {
			counts.Active++
		}
		if task.IsOverdue(now) {
			counts.Overdue++
		}
	}
	return counts
}

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// Sort returns a reordered copy. Ties keep store order.
func (f *filterServiceImpl) Sort(tasks []domain.Task, order SortOrder) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	switch order {
	case SortByOldest:
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	case SortByDueDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].DueDate, sorted[j].DueDate
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.Before(*b)
		})
	case SortByPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			return priorityRank[sorted[i].Priority] < priorityRank[sorted[j].Priority]
		})
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	}

	return sorted
}

// ParseSortOrder validates a sort order name. Empty means newest.
func ParseSortOrder(s string) (SortOrder, bool) {
	if s == "" {
		return SortByNewest, true
	}
	for _, o := range SortOrders {
		if string(o) == strings.ToLower(s) {
			return o, true
		}
	}
	return "", false
}
