package models

// TeamMemberStats is one row of the monthly operations table.
type TeamMemberStats struct {
	Name              string
	TasksCompleted    int
	AvgDaysPerTask    float64
	ProjectsCompleted int
	LateProjects      int
	TaskEfficiency    float64 // percent, two decimals
}

// OperationsSummary holds the team-level figures shown under "Additional Operations Metrics".
type OperationsSummary struct {
	AverageTaskDays   float64
	TotalProjects     int
	LateProjects      int
	LateProjectRate   float64
	TotalTasks        int
	OverallEfficiency float64
}

// OperationsColumns are the column headers of the team operations table, in field order.
var OperationsColumns = []string{
	"Team Member",
	"Tasks Completed (Monthly)",
	"Average Days per Task",
	"Projects Completed (Monthly)",
	"Late Projects",
	"Task Efficiency (%)",
}
