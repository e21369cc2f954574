package directory

import (
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// Employee is a row from the HRIS directory. Email is the matching key against
// the warehouse; SupervisorID is owned by the directory and may dangle or cycle.
type Employee struct {
	ID           string
	Email        string
	DisplayName  string
	Department   string
	JobTitle     string
	Location     string
	SupervisorID *string
	IsActive     bool
}

// HasResolvableEmail reports whether the employee can be matched against
// email-keyed attendance and productivity data.
func (e Employee) HasResolvableEmail() bool {
	return validator.IsValidEmail(validator.NormalizeEmail(e.Email))
}

// Index holds fast lookups over a directory snapshot. It is built once per
// request (or per sync run) and never mutated afterwards.
type Index struct {
	byID          map[string]Employee
	byEmail       map[string]Employee
	directReports map[string][]Employee
}

// BuildIndex constructs the lookup structures from a flat employee list.
// Employees without a resolvable email stay reachable by ID but are excluded
// from email-keyed lookups. Direct-report adjacency only includes active
// employees, since inactive ones are excluded from every report.
func BuildIndex(employees []Employee) *Index {
	idx := &Index{
		byID:          make(map[string]Employee, len(employees)),
		byEmail:       make(map[string]Employee, len(employees)),
		directReports: make(map[string][]Employee),
	}

	for _, emp := range employees {
		idx.byID[emp.ID] = emp

		if emp.HasResolvableEmail() {
			idx.byEmail[validator.NormalizeEmail(emp.Email)] = emp
		}
	}

	for _, emp := range employees {
		if !emp.IsActive || emp.SupervisorID == nil {
			continue
		}
		supervisorID := *emp.SupervisorID
		if _, ok := idx.byID[supervisorID]; !ok {
			continue
		}
		idx.directReports[supervisorID] = append(idx.directReports[supervisorID], emp)
	}

	return idx
}

// ByID looks up an employee by directory identifier.
func (i *Index) ByID(id string) (Employee, bool) {
	emp, ok := i.byID[id]
	return emp, ok
}

// ByEmail looks up an employee by normalized email.
func (i *Index) ByEmail(email string) (Employee, bool) {
	emp, ok := i.byEmail[validator.NormalizeEmail(email)]
	return emp, ok
}

// DirectReportsOf returns the active direct reports of the given employee.
func (i *Index) DirectReportsOf(id string) []Employee {
	return i.directReports[id]
}

// ActiveEmails returns the normalized email of every active employee with a
// resolvable email.
func (i *Index) ActiveEmails() []string {
	emails := make([]string, 0, len(i.byEmail))
	for email, emp := range i.byEmail {
		if emp.IsActive {
			emails = append(emails, email)
		}
	}
	return emails
}

// Size returns the number of employees in the snapshot, resolvable or not.
func (i *Index) Size() int {
	return len(i.byID)
}
