package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"altindan/internal/domain"
	"altindan/internal/notify"
	"altindan/internal/repos"
	"altindan/internal/services"
)

func memdb(t *testing.T) (*sqlx.DB, *repos.ProductRepo, *repos.OrderRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	prodRepo := repos.NewProductRepo(db)
	if err := prodRepo.Upsert(domain.Product{
		ID: "p1", NameUz: "Chuchvara 1kg", NameRu: "Чучвара 1кг", Price: 20000, Image: "p1.jpg",
	}); err != nil {
		t.Fatal(err)
	}
	return db, prodRepo, repos.NewOrderRepo(db)
}

func newOrderService(prodRepo *repos.ProductRepo, orderRepo *repos.OrderRepo, n services.Notifier) *services.OrderService {
	return services.NewOrderService(services.NewCatalogService(prodRepo), orderRepo, n)
}

func TestSubmitCreatesOrder(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	o, err := svc.Submit(services.SubmitInput{
		ProductID: "p1", Name: "Ali", Phone: "+998901234567", Qty: "2", Note: "tezroq", Lang: "uz",
	})
	if err != nil {
		t.Fatal(err)
	}
	if o.ID == "" || o.CreatedAt == "" {
		t.Fatalf("missing id/timestamp: %+v", o)
	}
	if o.ProductName != "Chuchvara 1kg" || o.Price != 20000 {
		t.Fatalf("bad snapshot: %+v", o)
	}
	if o.Qty != "2" || o.Customer != "Ali" {
		t.Fatalf("bad fields: %+v", o)
	}

	stored, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].ID != o.ID {
		t.Fatalf("order not stored: %+v", stored)
	}
}

func TestSubmitUnknownProductNoSideEffects(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	_, err := svc.Submit(services.SubmitInput{ProductID: "nope", Qty: "1"})
	if err != services.ErrProductNotFound {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	n, err := orderRepo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("store mutated on failed submit: %d orders", n)
	}
}

func TestSubmitLenientDefaults(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	cases := []struct {
		qty, want string
	}{
		{"abc", "1"},
		{"", "1"},
		{"-3", "1"},
		{"0", "1"},
		{"2.5", "2.5"},
		{" 4 ", "4"},
	}
	for _, tc := range cases {
		o, err := svc.Submit(services.SubmitInput{ProductID: "p1", Qty: tc.qty})
		if err != nil {
			t.Fatal(err)
		}
		if o.Qty != tc.want {
			t.Fatalf("qty %q: want %q, got %q", tc.qty, tc.want, o.Qty)
		}
		if o.Customer != "Anonim" {
			t.Fatalf("missing name should default to Anonim, got %q", o.Customer)
		}
		if o.Lang != "ru" {
			t.Fatalf("missing lang should default to ru, got %q", o.Lang)
		}
	}
}

func TestSnapshotSurvivesCatalogEdit(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	o, err := svc.Submit(services.SubmitInput{ProductID: "p1", Qty: "1", Lang: "ru"})
	if err != nil {
		t.Fatal(err)
	}

	// Reprice and rename the product after the order is stored.
	if err := prodRepo.Upsert(domain.Product{
		ID: "p1", NameUz: "Yangi nom", NameRu: "Новое имя", Price: 99999, Image: "p1.jpg",
	}); err != nil {
		t.Fatal(err)
	}

	stored, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("want 1 order, got %d", len(stored))
	}
	if stored[0].Price != o.Price || stored[0].ProductName != o.ProductName {
		t.Fatalf("stored order changed after catalog edit: %+v", stored[0])
	}
	if stored[0].Price != 20000 || stored[0].ProductName != "Чучвара 1кг" {
		t.Fatalf("snapshot lost: %+v", stored[0])
	}
}

func TestAppendOnlyOrderingAndReadIdempotence(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	var ids []string
	for i := 0; i < 5; i++ {
		o, err := svc.Submit(services.SubmitInput{ProductID: "p1", Qty: "1"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, o.ID)
	}

	first, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(ids) {
		t.Fatalf("want %d orders, got %d", len(ids), len(first))
	}
	for i, o := range first {
		if o.ID != ids[i] {
			t.Fatalf("order %d out of submission order: want %s got %s", i, ids[i], o.ID)
		}
	}

	second, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated ListAll differs at %d", i)
		}
	}
}

func TestConcurrentSubmissionsNoLostWrites(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)
	svc := newOrderService(prodRepo, orderRepo, nil)

	const k = 50
	var wg sync.WaitGroup
	errs := make(chan error, k)
	wg.Add(k)
	for i := 0; i < k; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(services.SubmitInput{ProductID: "p1", Qty: "1"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	stored, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != k {
		t.Fatalf("lost writes: want %d orders, got %d", k, len(stored))
	}
	seen := make(map[string]bool, k)
	for _, o := range stored {
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
	}
}

type brokenSender struct{}

func (brokenSender) Send(int64, string) error { return errors.New("group unreachable") }

func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	_, prodRepo, orderRepo := memdb(t)

	d := notify.NewDispatcher(brokenSender{}, -100123)
	svc := newOrderService(prodRepo, orderRepo, d)

	o, err := svc.Submit(services.SubmitInput{ProductID: "p1", Qty: "1", Name: "Ali"})
	if err != nil {
		t.Fatalf("delivery failure must not fail submission: %v", err)
	}
	d.Close() // waits for the delivery attempt

	stored, err := orderRepo.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].ID != o.ID {
		t.Fatalf("order missing after failed notification: %+v", stored)
	}
}
