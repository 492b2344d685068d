package service

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"ucstore-inventory/internal/repository"
	"ucstore-inventory/internal/testutil"
	"ucstore-inventory/internal/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

// clock hands out increasing timestamps so ordering by date is deterministic.
type clock struct {
	t time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	db        *gorm.DB
	products  repository.ProductRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	events    *recorder
	clock     *clock
	inventory *inventoryService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureOn(t, testutil.NewDB(t))
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	f := &fixture{
		db:        db,
		products:  repository.NewProductRepo(db),
		sales:     repository.NewSaleRepo(db),
		purchases: repository.NewPurchaseRepo(db),
		events:    &recorder{},
		clock:     newClock(),
	}
	_, err := f.products.SeedDefaults()
	require.NoError(t, err)

	f.inventory = NewInventoryService(f.products, f.sales, f.purchases, db, f.events).(*inventoryService)
	f.inventory.now = f.clock.Now
	seq := 0
	f.inventory.newID = func(prefix string) string {
		seq++
		return prefix + "-test-" + strconv.Itoa(seq)
	}
	return f
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
