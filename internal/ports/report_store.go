package ports

import "github.com/aalvaropc/navlink/internal/domain"

// ReportStore persists link check reports.
type ReportStore interface {
	SaveReport(r domain.LinkReport) (id string, err error)
}
