// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTaskTable represents the 'core.task' table
type CoreTaskTable struct {
	Table      string
	ID         string
	Title      string
	Status     string
	Urgency    string
	Importance string
	OwnerID    string
	CreatedAt  string
}

// CoreTask is the schema definition for core.task
var CoreTask = CoreTaskTable{
	Table:      "core.task",
	ID:         "id",
	Title:      "title",
	Status:     "status",
	Urgency:    "urgency",
	Importance: "importance",
	OwnerID:    "ownerid",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t CoreTaskTable) Columns() []string {
	return []string{t.ID, t.Title, t.Status, t.Urgency, t.Importance, t.OwnerID, t.CreatedAt}
}
