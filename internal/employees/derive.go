package employees

import (
	"sort"
	"strings"

	"github.com/jalvarez-dev/employee-gateway/pkg/upstream"
)

func filterByName(list []upstream.Employee, query string) []upstream.Employee {
	needle := strings.ToLower(query)
	matched := make([]upstream.Employee, 0, len(list))
	for _, employee := range list {
		if employee.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(employee.Name), needle) {
			matched = append(matched, employee)
		}
	}
	return matched
}

func highestSalary(list []upstream.Employee) int {
	highest := 0
	for _, employee := range list {
		if employee.Salary != nil && *employee.Salary > highest {
			highest = *employee.Salary
		}
	}
	return highest
}

// topEarnerNames sorts stably by salary descending so ties keep the
// provider's ordering, then projects the first limit names.
func topEarnerNames(list []upstream.Employee, limit int) []string {
	earners := make([]upstream.Employee, 0, len(list))
	for _, employee := range list {
		if employee.Salary != nil {
			earners = append(earners, employee)
		}
	}

	sort.SliceStable(earners, func(i, j int) bool {
		return *earners[i].Salary > *earners[j].Salary
	})

	if len(earners) > limit {
		earners = earners[:limit]
	}

	names := make([]string, 0, len(earners))
	for _, employee := range earners {
		names = append(names, employee.Name)
	}
	return names
}
