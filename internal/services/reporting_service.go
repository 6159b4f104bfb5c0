package services

import (
	"sort"
	"time"

	"smart-share-todo/internal/domain"
)

const (
	// DefaultTopTagsLimit caps the tag breakdown in a summary
	DefaultTopTagsLimit = 10
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	timeService   TimeService
	filterService FilterService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(timeService TimeService, filterService FilterService) ReportingService {
	return &reportingServiceImpl{
		timeService:   timeService,
		filterService: filterService,
	}
}

// Summarize aggregates counts, breakdowns and the next open due date
func (r *reportingServiceImpl) Summarize(tasks []domain.Task, now time.Time) *TaskSummary {
	summary := &TaskSummary{
		Counts:     r.filterService.Counts(tasks, now),
		ByPriority: make(map[domain.Priority]int, len(domain.Priorities)),
		ByStatus:   make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, p := range domain.Priorities {
		summary.ByPriority[p] = 0
	}
	for _, s := range domain.Statuses {
		summary.ByStatus[s] = 0
	}

	tagCounts := make(map[string]int)
	var nextDue *domain.Task
	for i := range tasks {
		task := tasks[i]
		summary.ByPriority[task.Priority]++
		summary.ByStatus[task.Status]++
		if len(task.SharedWith) > 0 {
			summary.Shared++
		}
		for _, tag := range task.Tags {
			tagCounts[tag]++
		}

		if task.DueDate == nil || task.Completed {
			continue
		}
		if r.timeService.IsToday(*task.DueDate) {
			summary.DueToday++
		}
		if !task.DueDate.Before(now) && (nextDue == nil || task.DueDate.Before(*nextDue.DueDate)) {
			nextDue = &tasks[i]
		}
	}

	if nextDue != nil {
		c := nextDue.Clone()
		summary.NextDue = &c
	}
	summary.Tags = topTags(tagCounts, DefaultTopTagsLimit)
	return summary
}

// topTags orders tags by count then name and keeps the first limit
func topTags(counts map[string]int, limit int) []TagCount {
	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
