package services

import (
	"errors"
	"strconv"

	"altindan/internal/repos"
)

// ErrNotAllowed is returned when a report is requested from anywhere but the
// configured admin group.
var ErrNotAllowed = errors.New("not allowed")

type Report struct {
	OrderCount    int
	TotalQuantity float64
	TotalRevenue  float64
}

type ReportService struct {
	Orders    *repos.OrderRepo
	AdminChat int64
}

func NewReportService(orders *repos.OrderRepo, adminChat int64) *ReportService {
	return &ReportService{Orders: orders, AdminChat: adminChat}
}

// SummarizeFor gates Summarize on the requesting chat. With no admin chat
// configured, nobody is privileged.
func (s *ReportService) SummarizeFor(chatID int64) (Report, error) {
	if s.AdminChat == 0 || chatID != s.AdminChat {
		return Report{}, ErrNotAllowed
	}
	return s.Summarize()
}

// Summarize folds every stored order into count/quantity/revenue totals.
// Rows with an unparseable quantity contribute zero to the sums instead of
// failing the whole report.
func (s *ReportService) Summarize() (Report, error) {
	orders, err := s.Orders.ListAll()
	if err != nil {
		return Report{}, err
	}
	rep := Report{OrderCount: len(orders)}
	for _, o := range orders {
		q, err := strconv.ParseFloat(o.Qty, 64)
		if err != nil {
			continue
		}
		rep.TotalQuantity += q
		rep.TotalRevenue += q * float64(o.Price)
	}
	return rep, nil
}
