// Package maintenance builds the manager and tenant views of repair requests:
// text search, priority filter, sorting, open/closed tabs and summary counts.
package maintenance

import (
	"errors"
	"sort"
	"strings"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// SortField names a column the request list can be ordered by.
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortTitle     SortField = "title"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
	SortProperty  SortField = "property"
	SortTenant    SortField = "tenant"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PriorityAll disables the priority filter.
const PriorityAll = "all"

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownDirection = errors.New("unknown sort direction")
	ErrUnknownPriority  = errors.New("unknown priority")
)

// Query describes one view of the request list. Zero values mean no search,
// every priority and newest first.
type Query struct {
	Search    string    `validate:"omitempty,max=200"`
	Priority  string    `validate:"omitempty,oneof=all low medium high emergency"`
	Sort      SortField `validate:"omitempty,oneof=created_at title priority status property tenant"`
	Direction Direction `validate:"omitempty,oneof=asc desc"`
}

// Normalize fills defaults and rejects unknown values.
func (q Query) Normalize() (Query, error) {
	if q.Priority == "" {
		q.Priority = PriorityAll
	}
	if q.Sort == "" {
		q.Sort = SortCreatedAt
	}
	if q.Direction == "" {
		q.Direction = Desc
	}
	q.Search = strings.TrimSpace(q.Search)

	if q.Priority != PriorityAll && models.Priority(q.Priority).Rank() == 0 {
		return q, ErrUnknownPriority
	}
	if _, ok := less[q.Sort]; !ok {
		return q, ErrUnknownSortField
	}
	if q.Direction != Asc && q.Direction != Desc {
		return q, ErrUnknownDirection
	}
	return q, nil
}

var less = map[SortField]func(a, b models.MaintenanceRequest) int{
	SortCreatedAt: func(a, b models.MaintenanceRequest) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortTitle:     func(a, b models.MaintenanceRequest) int { return compareFold(a.Title, b.Title) },
	SortPriority:  func(a, b models.MaintenanceRequest) int { return a.Priority.Rank() - b.Priority.Rank() },
	SortStatus:    func(a, b models.MaintenanceRequest) int { return strings.Compare(string(a.Status), string(b.Status)) },
	SortProperty:  func(a, b models.MaintenanceRequest) int { return compareFold(a.PropertyName, b.PropertyName) },
	SortTenant:    func(a, b models.MaintenanceRequest) int { return compareFold(a.TenantName, b.TenantName) },
}

// Apply returns a new slice holding the requests that match q, ordered as q
// asks. Ties keep their input order. An invalid query is treated as its
// defaults; call Normalize first to surface the error.
func Apply(requests []models.MaintenanceRequest, q Query) []models.MaintenanceRequest {
	nq, err := q.Normalize()
	if err != nil {
		nq, _ = Query{Search: q.Search}.Normalize()
	}

	needle := strings.ToLower(nq.Search)
	out := make([]models.MaintenanceRequest, 0, len(requests))
	for _, r := range requests {
		if nq.Priority != PriorityAll && string(r.Priority) != nq.Priority {
			continue
		}
		if needle != "" && !matches(r, needle) {
			continue
		}
		out = append(out, r)
	}

	cmp := less[nq.Sort]
	sort.SliceStable(out, func(i, j int) bool {
		if nq.Direction == Desc {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// Split partitions requests into the open tab (open, in progress) and the
// closed tab (completed, cancelled), keeping order.
func Split(requests []models.MaintenanceRequest) (open, closed []models.MaintenanceRequest) {
	open = []models.MaintenanceRequest{}
	closed = []models.MaintenanceRequest{}
	for _, r := range requests {
		if r.Status.IsOpen() {
			open = append(open, r)
		} else {
			closed = append(closed, r)
		}
	}
	return open, closed
}

// Summarize counts requests for the dashboard cards.
func Summarize(requests []models.MaintenanceRequest) models.MaintenanceSummary {
	var s models.MaintenanceSummary
	for _, r := range requests {
		s.Total++
		switch r.Status {
		case models.MaintenanceOpen:
			s.Open++
		case models.MaintenanceInProgress:
			s.InProgress++
		case models.MaintenanceCompleted:
			s.Completed++
		}
		if r.Priority == models.PriorityEmergency && r.Status.IsOpen() {
			s.EmergencyOpen++
		}
	}
	return s
}

func matches(r models.MaintenanceRequest, needle string) bool {
	for _, field := range []string{r.Title, r.Description, r.TenantName, r.PropertyName, r.UnitNumber} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
