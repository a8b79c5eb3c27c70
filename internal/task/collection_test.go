package task

import "testing"

func sample() []Task {
	return []Task{
		{Title: "report", Description: "first", DueDate: MustParseDate("2024-03-01"), Status: StatusPending},
		{Title: "groceries", Description: "second", DueDate: MustParseDate("2024-01-15"), Status: StatusPending},
		{Title: "report", Description: "third", DueDate: MustParseDate("2024-01-15"), Status: StatusCompleted},
	}
}

func TestFind(t *testing.T) {
	tasks := sample()
	if got := Find(tasks, "report"); got != 0 {
		t.Errorf("Find(report) = %d, want 0", got)
	}
	if got := Find(tasks, "groceries"); got != 1 {
		t.Errorf("Find(groceries) = %d, want 1", got)
	}
	if got := Find(tasks, "Report"); got != -1 {
		t.Errorf("Find is case-sensitive: got %d, want -1", got)
	}
	if got := Find(nil, "report"); got != -1 {
		t.Errorf("Find on empty = %d, want -1", got)
	}
}

func TestMarkCompletedFirstMatchOnly(t *testing.T) {
	tasks := []Task{
		{Title: "dup", Description: "one", DueDate: MustParseDate("2024-01-01"), Status: StatusPending},
		{Title: "dup", Description: "two", DueDate: MustParseDate("2024-01-02"), Status: StatusPending},
	}

	if !MarkCompleted(tasks, "dup") {
		t.Fatal("MarkCompleted returned false for existing title")
	}
	if tasks[0].Status != StatusCompleted {
		t.Errorf("first match status = %s, want completed", tasks[0].Status)
	}
	if tasks[1].Status != StatusPending {
		t.Errorf("second match status = %s, want pending", tasks[1].Status)
	}

	if MarkCompleted(tasks, "missing") {
		t.Error("MarkCompleted returned true for missing title")
	}
}

func TestDeleteAllMatches(t *testing.T) {
	tasks := sample()

	kept, removed := DeleteAll(tasks, "report")
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(kept) != 1 || kept[0].Title != "groceries" {
		t.Errorf("kept = %+v, want only groceries", kept)
	}
	if Find(kept, "report") != -1 {
		t.Error("a task titled report survived DeleteAll")
	}

	kept, removed = DeleteAll(tasks, "missing")
	if removed != 0 || len(kept) != len(tasks) {
		t.Errorf("DeleteAll(missing): removed %d, kept %d", removed, len(kept))
	}
}

func TestSortByDueDateStable(t *testing.T) {
	tasks := sample()

	sorted := SortByDueDate(tasks)

	wantOrder := []string{"second", "third", "first"}
	for i, want := range wantOrder {
		if sorted[i].Description != want {
			t.Errorf("sorted[%d] = %s, want %s", i, sorted[i].Description, want)
		}
	}

	if tasks[0].Description != "first" || tasks[2].Description != "third" {
		t.Error("SortByDueDate reordered its input")
	}
}

func TestFilterByStatus(t *testing.T) {
	tasks := sample()

	pending := FilterByStatus(tasks, StatusPending)
	if len(pending) != 2 || pending[0].Description != "first" || pending[1].Description != "second" {
		t.Errorf("pending = %+v", pending)
	}

	completed := FilterByStatus(tasks, StatusCompleted)
	if len(completed) != 1 || completed[0].Description != "third" {
		t.Errorf("completed = %+v", completed)
	}

	if got := FilterByStatus(nil, StatusPending); len(got) != 0 {
		t.Errorf("FilterByStatus(nil) = %+v, want empty", got)
	}
}

func TestCounts(t *testing.T) {
	counts := Counts(sample())
	if counts[StatusPending] != 2 || counts[StatusCompleted] != 1 {
		t.Errorf("Counts = %v", counts)
	}
}
