package task

import "sort"

// Find returns the index of the first task whose title equals title exactly,
// or -1 if none matches.
func Find(tasks []Task, title string) int {
	for i := range tasks {
		if tasks[i].Title == title {
			return i
		}
	}
	return -1
}

// MarkCompleted marks the first task titled title as completed.
// Later tasks with the same title are left alone.
func MarkCompleted(tasks []Task, title string) bool {
	i := Find(tasks, title)
	if i < 0 {
		return false
	}
	tasks[i].Status = StatusCompleted
	return true
}

// DeleteAll returns the tasks whose title is not title, along with the
// number of tasks removed. Every match is removed, not just the first.
func DeleteAll(tasks []Task, title string) ([]Task, int) {
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Title != title {
			kept = append(kept, t)
		}
	}
	return kept, len(tasks) - len(kept)
}

// SortByDueDate returns a copy of tasks ordered by ascending due date.
// Tasks due on the same day keep their relative order.
func SortByDueDate(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})
	return sorted
}

// FilterByStatus returns the tasks with the given status, in order.
func FilterByStatus(tasks []Task, status Status) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Counts returns the number of tasks per status.
func Counts(tasks []Task) map[Status]int {
	counts := map[Status]int{
		StatusPending:   0,
		StatusCompleted: 0,
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
