package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"altindan/internal/domain"
	"altindan/internal/repos"
)

// Notifier receives a stored order off the request path. Implementations
// must be safe to call from any goroutine and must never block the caller.
type Notifier interface {
	Notify(domain.Order)
}

type SubmitInput struct {
	ProductID string
	Name      string
	Phone     string
	Qty       string
	Note      string
	Lang      string
}

type OrderService struct {
	Catalog *CatalogService
	Orders  *repos.OrderRepo
	Notify  Notifier
}

func NewOrderService(catalog *CatalogService, orders *repos.OrderRepo, n Notifier) *OrderService {
	return &OrderService{Catalog: catalog, Orders: orders, Notify: n}
}

// Submit records a new order and hands it to the notifier. The product name
// and price are snapshotted from the catalog at submission time. An unknown
// product aborts with ErrProductNotFound and no side effects; a storage
// failure aborts before any notification. Notification happens after the
// append and can never fail the submission.
func (s *OrderService) Submit(in SubmitInput) (domain.Order, error) {
	p, err := s.Catalog.GetProduct(in.ProductID)
	if err != nil {
		return domain.Order{}, err
	}

	lang := strings.ToLower(strings.TrimSpace(in.Lang))
	if lang != "uz" && lang != "ru" {
		lang = "ru"
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Anonim"
	}

	o := domain.Order{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name(lang),
		Price:       p.Price,
		Qty:         normalizeQty(in.Qty),
		Customer:    name,
		Phone:       strings.TrimSpace(in.Phone),
		Note:        strings.TrimSpace(in.Note),
		Lang:        lang,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Orders.Append(o); err != nil {
		return domain.Order{}, err
	}
	if s.Notify != nil {
		s.Notify.Notify(o)
	}
	return o, nil
}

// normalizeQty keeps the legacy permissive policy: anything that does not
// parse as a positive number becomes "1" instead of a rejection.
func normalizeQty(raw string) string {
	raw = strings.TrimSpace(raw)
	if q, err := strconv.ParseFloat(raw, 64); err == nil && q > 0 {
		return strconv.FormatFloat(q, 'f', -1, 64)
	}
	return "1"
}
