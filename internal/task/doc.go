// Package task defines the task record and the collection operations the
// tracker applies to it.
//
// A task file holds an ordered array of records:
//
//	[
//	  {
//	    "title": "Write report",
//	    "description": "Quarterly numbers",
//	    "due_date": "2024-03-01",
//	    "status": "pending"
//	  }
//	]
//
// # Titles
//
// The title is the only lookup key. Nothing enforces uniqueness, so callers
// must not assume it:
//   - Find and MarkCompleted act on the first match in collection order
//   - DeleteAll removes every match
//
// # Status Values
//
//   - "pending": new tasks start here
//   - "completed": set by MarkCompleted
//
// # Due Dates
//
// Due dates are calendar dates without time of day or zone, always written
// as YYYY-MM-DD.
package task
