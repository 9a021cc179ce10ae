package helpers_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/mock"
)

var (
	peopleLoc = driverk.CSS("div.people > .person")
	nameLoc   = driverk.ClassName("name")
)

func makePeople(page *mock.Page, names ...string) []*mock.Element {
	people := make([]*mock.Element, 0, len(names))
	for _, name := range names {
		person := mock.MakeElement("div", "", "class", "person")
		person.AddChild(nameLoc, mock.MakeElement("p", name, "class", "name"))
		people = append(people, person)
	}
	page.Add(peopleLoc, people...)
	return people
}

func TestFindElementInCollectionByText(t *testing.T) {
	page := mock.NewPage()
	people := makePeople(page, "Alice", "Bob", "Carol")
	h, d := newHelpers(t, page)

	search := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Bob")
	if d.FindElementsCalled {
		t.Fatalf("search must not run before it is invoked")
	}

	found, err := search(context.Background())
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if found != people[1] {
		t.Fatalf("expected the second person to be returned")
	}
}

func TestFindElementInCollectionByTextNotFound(t *testing.T) {
	page := mock.NewPage()
	makePeople(page, "Alice", "Bob", "Carol")
	h, _ := newHelpers(t, page)

	found, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Dave")(context.Background())
	if found != nil {
		t.Fatalf("nothing should be found")
	}
	var searchErr *driverk.CollectionSearchErr
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected collection search error, got: %v\n", err)
	}
	msg := err.Error()
	for _, part := range []string{"div.people > .person", "name", "Dave"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("expected %q in message: %s\n", part, msg)
		}
	}
}

func TestFindElementInCollectionByTextSlowComparisons(t *testing.T) {
	page := mock.NewPage()
	people := makePeople(page, "Alice", "Bob", "Carol")
	// the matching member answers last, a barrier that does not wait would miss it
	slow := mock.MakeElement("p", "Carol", "class", "name")
	slow.TextFn = func(ctx context.Context) (string, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			return "Carol", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	people[2].AddChild(nameLoc, slow)
	h, _ := newHelpers(t, page)

	found, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Carol")(context.Background())
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if found != people[2] {
		t.Fatalf("expected the third person")
	}
}

func TestFindElementInCollectionByTextPrefersFirstMember(t *testing.T) {
	page := mock.NewPage()
	people := makePeople(page, "Bob", "Bob")
	// the first Bob answers last
	slow := mock.MakeElement("p", "Bob", "class", "name")
	slow.TextFn = func(ctx context.Context) (string, error) {
		select {
		case <-time.After(50 * time.Millisecond):
			return "Bob", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	people[0].AddChild(nameLoc, slow)
	h, _ := newHelpers(t, page)

	found, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Bob")(context.Background())
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if found != people[0] {
		t.Fatalf("expected the first matching member in collection order")
	}
}

func TestFindElementInCollectionByTextSkipsMembersWithoutCriteria(t *testing.T) {
	page := mock.NewPage()
	people := makePeople(page, "Alice")
	empty := mock.MakeElement("div", "", "class", "person")
	page.Add(peopleLoc, empty)
	h, _ := newHelpers(t, page)

	found, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Alice")(context.Background())
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if found != people[0] {
		t.Fatalf("expected Alice")
	}
}

func TestFindElementInCollectionByTextMemberFailure(t *testing.T) {
	page := mock.NewPage()
	people := makePeople(page, "Alice")
	expected := errors.New("tab crashed")
	broken := mock.MakeElement("p", "")
	broken.TextFn = func(ctx context.Context) (string, error) {
		return "", expected
	}
	people[0].AddChild(nameLoc, broken)
	h, _ := newHelpers(t, page)

	_, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Alice")(context.Background())
	if errors.Cause(err) != expected {
		t.Fatalf("expected member failure to end the search, got: %v\n", err)
	}
}

func TestFindElementInCollectionByTextEmptyCollection(t *testing.T) {
	h, _ := newHelpers(t, mock.NewPage())

	_, err := h.FindElementInCollectionByText(peopleLoc, nameLoc, "Alice")(context.Background())
	var searchErr *driverk.CollectionSearchErr
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected collection search error, got: %v\n", err)
	}
}
