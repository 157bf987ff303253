package client

import "context"

// DashboardStats are the aggregates the admin dashboard shows. They are
// derived client-side from the plain list endpoints; the API has no
// aggregate endpoint.
type DashboardStats struct {
	TotalVolunteers  int
	ActiveVolunteers int
	TotalHours       float64

	TotalEvents    int
	EventsByStatus map[string]int

	TotalTasks    int
	TasksByStatus map[string]int
}

// TotalHours sums the accrued hours across volunteers.
func TotalHours(volunteers []Volunteer) float64 {
	var total float64
	for _, v := range volunteers {
		total += v.Hours
	}
	return total
}

// CountActiveVolunteers counts volunteers with status "active".
func CountActiveVolunteers(volunteers []Volunteer) int {
	n := 0
	for _, v := range volunteers {
		if v.Status == "active" {
			n++
		}
	}
	return n
}

// EventsByStatus buckets events by status.
func EventsByStatus(events []Event) map[string]int {
	counts := map[string]int{}
	for _, e := range events {
		counts[e.Status]++
	}
	return counts
}

// TasksByStatus buckets tasks by status.
func TasksByStatus(tasks []Task) map[string]int {
	counts := map[string]int{}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// Stats fetches the volunteer, event, and task lists and derives the
// dashboard aggregates from them.
func (c *Client) Stats(ctx context.Context) (DashboardStats, error) {
	volunteers, err := c.Volunteers(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}
	events, err := c.Events(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}
	tasks, err := c.Tasks(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		TotalVolunteers:  len(volunteers),
		ActiveVolunteers: CountActiveVolunteers(volunteers),
		TotalHours:       TotalHours(volunteers),
		TotalEvents:      len(events),
		EventsByStatus:   EventsByStatus(events),
		TotalTasks:       len(tasks),
		TasksByStatus:    TasksByStatus(tasks),
	}, nil
}
