package helpers_test

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/flow"
	"gitlab.com/driverhelpers/helpers"
	"gitlab.com/driverhelpers/mock"
)

func newHelpers(t *testing.T, page *mock.Page, opts ...helpers.Option) (*helpers.Helpers, *mock.Driver) {
	f := flow.New()
	t.Cleanup(f.Close)
	d := mock.MakeDriver(page)
	return helpers.New(d, f, opts...), d
}

func TestLocatorSugar(t *testing.T) {
	page := mock.NewPage()
	ele := mock.MakeElement("div", "")
	expected := []driverk.Locator{
		{By: driverk.ByName, Value: "x"},
		{By: driverk.ByID, Value: "x"},
		{By: driverk.ByTagName, Value: "x"},
		{By: driverk.ByClassName, Value: "x"},
	}
	for _, loc := range expected {
		page.Add(loc, ele)
	}

	h, d := newHelpers(t, page)
	ctx := context.Background()

	sugar := []func(ctx context.Context, s string) (driverk.Element, error){
		h.ByName,
		h.ByID,
		h.ByTag,
		h.ByClass,
	}
	for i, fn := range sugar {
		found, err := fn(ctx, "x")
		if err != nil {
			t.Fatalf("sugar %d failed: %s\n", i, err)
		}
		if found != ele {
			t.Fatalf("sugar %d returned the wrong element", i)
		}
	}

	captured := d.Locators()
	if len(captured) != len(expected) {
		t.Fatalf("expected %d driver calls got %s\n", len(expected), spew.Sdump(captured))
	}
	for i := range expected {
		if captured[i] != expected[i] {
			t.Fatalf("expected locator %s got %s\n", expected[i], captured[i])
		}
	}
}

func TestLocatorSugarNotFoundPassesThrough(t *testing.T) {
	h, _ := newHelpers(t, mock.NewPage())

	_, err := h.ByID(context.Background(), "missing")
	if !driverk.IsNotFound(err) {
		t.Fatalf("expected driver not found error, got: %v\n", err)
	}
}

func TestSelectByValue(t *testing.T) {
	page := mock.NewPage()
	sel, options := mock.MakeSelect("opt1", "opt2")
	page.Add(driverk.ID("country"), sel)
	h, _ := newHelpers(t, page)

	if err := h.SelectByValue(context.Background(), driverk.ID("country"), "opt2"); err != nil {
		t.Fatalf("error selecting: %s\n", err)
	}

	if options[0].ClickCalled || options[1].Clicks() != 1 {
		t.Fatalf("expected only opt2 to be clicked")
	}

	if err := h.SelectByValue(context.Background(), driverk.ID("country"), "opt3"); !driverk.IsNotFound(err) {
		t.Fatalf("expected missing option to fail with not found, got: %v\n", err)
	}
}

func TestRadioByValue(t *testing.T) {
	page := mock.NewPage()
	male := mock.MakeInput("radio", "gender", "M")
	page.Add(driverk.CSS("input[name='gender'][value='M']"), male)
	h, _ := newHelpers(t, page)

	if err := h.RadioByValue(context.Background(), "gender", "M"); err != nil {
		t.Fatalf("error clicking radio: %s\n", err)
	}
	if male.Clicks() != 1 {
		t.Fatalf("radio was not clicked")
	}
}

func TestAvoidStaleElement(t *testing.T) {
	h, d := newHelpers(t, mock.NewPage(), helpers.WithStaleIterations(5))
	calls := 0
	d.WaitFn = func(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
		if timeout != helpers.DefaultStaleTimeout {
			t.Fatalf("expected default timeout got %s\n", timeout)
		}
		for {
			calls++
			done, _ := cond(ctx)
			if done {
				return nil
			}
		}
	}

	h.AvoidStaleElement(context.Background())
	if calls != 6 {
		t.Fatalf("expected predicate to be true on call 6, was %d\n", calls)
	}
}

func TestAvoidStaleElementNeverFails(t *testing.T) {
	h, d := newHelpers(t, mock.NewPage(), helpers.WithStaleTimeout(time.Millisecond))
	d.WaitFn = func(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
		return driverk.ErrTimedOut
	}
	// must simply return
	h.AvoidStaleElement(context.Background())
	if !d.WaitCalled {
		t.Fatalf("driver wait was not called")
	}
}

func TestAvoidStaleElementWithPoll(t *testing.T) {
	h, _ := newHelpers(t, mock.NewPage())
	start := time.Now()
	h.AvoidStaleElement(context.Background())
	if time.Since(start) > helpers.DefaultStaleTimeout {
		t.Fatalf("wait should end after the iterations, not the timeout")
	}
}
