package helpers

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"gitlab.com/driverhelpers/driverk"
	"golang.org/x/sync/errgroup"
)

// Search resolves to the element found by FindElementInCollectionByText
type Search func(ctx context.Context) (driverk.Element, error)

// match keeps the lowest indexed member that matched
type match struct {
	mu      sync.Mutex
	element driverk.Element
	index   int
}

func newMatch() *match {
	return &match{index: -1}
}

// offer ele at index, true if it is now the best match
func (m *match) offer(index int, ele driverk.Element) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index != -1 && m.index < index {
		return false
	}
	m.element = ele
	m.index = index
	return true
}

// beaten is true once a member before index matched
func (m *match) beaten(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index != -1 && m.index < index
}

// FindElementInCollectionByText returns a Search for the first element matched
// by collection whose descendant matched by criteria has text equal to text.
//
//	findPerson := h.FindElementInCollectionByText(
//		driverk.CSS("div.people > .person"),
//		driverk.ClassName("name"),
//		"Jeff Winger",
//	)
//	person, err := findPerson(ctx)
//
// Every member is compared concurrently and the lowest indexed match wins, the
// search only fails once all comparisons settled without a match. Members
// without a criteria descendant do not match, any other failure ends the search.
func (h *Helpers) FindElementInCollectionByText(collection, criteria driverk.Locator, text string) Search {
	return func(ctx context.Context) (driverk.Element, error) {
		var found driverk.Element
		err := h.flow.Execute(ctx, func(ctx context.Context) error {
			ele, err := h.searchCollection(ctx, collection, criteria, text)
			found = ele
			return err
		}).Wait(ctx)
		if err != nil {
			return nil, err
		}
		return found, nil
	}
}

func (h *Helpers) searchCollection(ctx context.Context, collection, criteria driverk.Locator, text string) (driverk.Element, error) {
	members, err := h.driver.FindElements(ctx, collection)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	// a match at i makes every comparison after i moot
	memberCtxs := make([]context.Context, len(members))
	cancels := make([]context.CancelFunc, len(members))
	for i := range members {
		memberCtxs[i], cancels[i] = context.WithCancel(gCtx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	m := newMatch()
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			matched, err := memberMatches(memberCtxs[i], member, criteria, text)
			if m.beaten(i) {
				return nil
			}
			if err != nil {
				return err
			}
			if matched && m.offer(i, member) {
				for _, cancel := range cancels[i+1:] {
					cancel()
				}
			}
			return nil
		})
	}

	err = g.Wait()
	if m.index != -1 {
		log.Ctx(ctx).Debug().Int("index", m.index).Str("text", text).Msg("found element in collection")
		return m.element, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, &driverk.CollectionSearchErr{Collection: collection, Criteria: criteria, Text: text}
}

// memberMatches is false when member has no criteria descendant
func memberMatches(ctx context.Context, member driverk.Element, criteria driverk.Locator, text string) (bool, error) {
	ele, err := member.FindElement(ctx, criteria)
	if driverk.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	value, err := ele.Text(ctx)
	if err != nil {
		return false, err
	}
	return value == text, nil
}
