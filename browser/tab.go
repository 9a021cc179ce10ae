package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
	"github.com/wirepair/gcd/gcdapi"
	"gitlab.com/driverhelpers/driverk"
)

// Tab is a chromium browser tab driven over the devtools protocol, it
// implements driverk.Driver
type Tab struct {
	t                 *gcd.ChromeTarget
	activity          *activity
	topNodeID         atomic.Value           // the nodeID of the current top level #document, 0 when invalidated
	navigationCh      chan struct{}          // for receiving load event fired while navigating
	crashedCh         chan string            // the chrome tab crashed with a reason
	exitCh            chan struct{}          // for when we close the tab, kill go routines
	closed            int32                  // have we already shut down
	navigationTimeout time.Duration          // amount of time to wait before failing navigation
	stabilityTimeout  time.Duration          // amount of time to give up waiting for stability
	stableAfter       time.Duration          // amount of time of no activity to consider the DOM stable
	disconnected      TabDisconnectedHandler // called with reason the chrome tab was disconnected from the debugger service
}

var _ driverk.Driver = (*Tab)(nil)

// NewTab to use
func NewTab(ctx context.Context, target *gcd.ChromeTarget) *Tab {
	t := &Tab{
		t:                 target,
		activity:          newActivity(),
		navigationCh:      make(chan struct{}, 1),
		crashedCh:         make(chan string, 1),
		exitCh:            make(chan struct{}),
		navigationTimeout: 30 * time.Second,
		stabilityTimeout:  5 * time.Second,
		stableAfter:       300 * time.Millisecond,
	}
	t.topNodeID.Store(0)
	t.disconnected = t.defaultDisconnectedHandler
	t.subscribeBrowserEvents(ctx)
	return t
}

// SetDisconnectedHandler so caller can trap when the debugger was disconnected/crashed.
func (t *Tab) SetDisconnectedHandler(handlerFn TabDisconnectedHandler) {
	t.disconnected = handlerFn
}

func (t *Tab) defaultDisconnectedHandler(tab *Tab, reason string) {
	log.Debug().Msgf("tab %s tabID: %s", reason, tab.t.Target.Id)
}

// SetNavigationTimeout to wait for the load event before giving up, default is 30 seconds
func (t *Tab) SetNavigationTimeout(timeout time.Duration) {
	t.navigationTimeout = timeout
}

// SetStabilityTimeout to wait for the DOM to settle after load, default is 5 seconds.
func (t *Tab) SetStabilityTimeout(timeout time.Duration) {
	t.stabilityTimeout = timeout
}

// SetStabilityTime to wait for no node changes before we consider the DOM stable.
// The default stableAfter is 300 ms.
func (t *Tab) SetStabilityTime(stableAfter time.Duration) {
	t.stableAfter = stableAfter
}

// Close the exit channel
func (t *Tab) Close() {
	if atomic.CompareAndSwapInt32(&t.closed, 0, 1) {
		close(t.exitCh)
	}
}

// Navigate to url and wait for the page to be ready
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if atomic.LoadInt32(&t.closed) == 1 {
		return driverk.ErrTabClosing
	}
	// drop a load event from a previous page
	select {
	case <-t.navigationCh:
	default:
	}

	navParams := &gcdapi.PageNavigateParams{Url: url, TransitionType: "typed"}
	_, _, errText, err := t.t.Page.NavigateWithParams(navParams)
	if err != nil {
		return err
	}

	if errText != "" {
		return errors.Wrap(driverk.ErrNavigating, errText)
	}
	t.invalidateDocument()
	return t.WaitReady(ctx, t.stableAfter)
}

// WaitReady waits for the page to load, DOM to be stable, and no network traffic in progress.
// A page that never settles is not an error once it has loaded.
func (t *Tab) WaitReady(ctx context.Context, stableAfter time.Duration) error {
	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	navTimer := time.NewTimer(t.navigationTimeout)
	defer navTimer.Stop()

	select {
	case <-navTimer.C:
		return driverk.ErrNavigationTimedOut
	case <-ctx.Done():
		return ctx.Err()
	case <-t.exitCh:
		return driverk.ErrTabClosing
	case reason := <-t.crashedCh:
		return errors.Wrap(driverk.ErrTabCrashed, reason)
	case <-t.navigationCh:
	}

	stableTimer := time.NewTimer(t.stabilityTimeout)
	defer stableTimer.Stop()

	for {
		select {
		case reason := <-t.crashedCh:
			return errors.Wrap(driverk.ErrTabCrashed, reason)
		case <-ctx.Done():
			return ctx.Err()
		case <-t.exitCh:
			return driverk.ErrTabClosing
		case <-stableTimer.C:
			log.Ctx(ctx).Info().Int32("requests", t.activity.GetRequests()).Msg("stability timed out")
			return nil
		case <-ticker.C:
			if t.activity.StableFor(stableAfter) {
				return nil
			}
		}
	}
}

// GetURL by looking at the navigation history
func (t *Tab) GetURL(ctx context.Context) string {
	_, entries, err := t.t.Page.GetNavigationHistory()
	if err != nil || len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Url
}

// FindElement returns the first element in the top document matching loc
func (t *Tab) FindElement(ctx context.Context, loc driverk.Locator) (driverk.Element, error) {
	if loc.IsXPath() {
		elements, err := t.search(ctx, loc.Value)
		if err != nil {
			return nil, err
		}
		if len(elements) == 0 {
			return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
		}
		return elements[0], nil
	}

	docNodeID, err := t.documentNodeID(ctx)
	if err != nil {
		return nil, err
	}
	return t.querySelector(ctx, docNodeID, loc)
}

// FindElements returns every element in the top document matching loc
func (t *Tab) FindElements(ctx context.Context, loc driverk.Locator) ([]driverk.Element, error) {
	if loc.IsXPath() {
		return t.search(ctx, loc.Value)
	}

	docNodeID, err := t.documentNodeID(ctx)
	if err != nil {
		return nil, err
	}
	return t.querySelectorAll(ctx, docNodeID, loc)
}

// Wait polls cond until true or timeout
func (t *Tab) Wait(ctx context.Context, cond driverk.Condition, timeout time.Duration) error {
	return driverk.Poll(ctx, cond, timeout, driverk.DefaultPollInterval)
}

func (t *Tab) querySelector(ctx context.Context, nodeID int, loc driverk.Locator) (driverk.Element, error) {
	if err := t.ready(ctx); err != nil {
		return nil, err
	}
	found, err := t.t.DOM.QuerySelector(nodeID, loc.Selector())
	if err != nil {
		return nil, errors.Wrapf(err, "querySelector %s", loc)
	}
	// chrome answers 0 for no match
	if found == 0 {
		return nil, &driverk.ElementNotFoundErr{Message: loc.String()}
	}
	return newElement(t, found), nil
}

func (t *Tab) querySelectorAll(ctx context.Context, nodeID int, loc driverk.Locator) ([]driverk.Element, error) {
	if err := t.ready(ctx); err != nil {
		return nil, err
	}
	nodeIDs, err := t.t.DOM.QuerySelectorAll(nodeID, loc.Selector())
	if err != nil {
		return nil, errors.Wrapf(err, "querySelectorAll %s", loc)
	}

	elements := make([]driverk.Element, len(nodeIDs))
	for k, id := range nodeIDs {
		elements[k] = newElement(t, id)
	}
	return elements, nil
}

// search all elements that match an XPath (or CSS) query in the top document
func (t *Tab) search(ctx context.Context, query string) ([]driverk.Element, error) {
	if err := t.ready(ctx); err != nil {
		return nil, err
	}
	// performSearch needs the whole document pushed to the frontend
	if _, err := t.documentNodeID(ctx); err != nil {
		return nil, err
	}

	var s gcdapi.DOMPerformSearchParams
	s.Query = query
	searchID, count, err := t.t.DOM.PerformSearchWithParams(&s)
	if err != nil {
		return nil, err
	}
	defer t.t.DOM.DiscardSearchResults(searchID)

	if count < 1 {
		return make([]driverk.Element, 0), nil
	}

	var r gcdapi.DOMGetSearchResultsParams
	r.SearchId = searchID
	r.FromIndex = 0
	r.ToIndex = count
	nodeIDs, err := t.t.DOM.GetSearchResultsWithParams(&r)
	if err != nil {
		return nil, err
	}

	elements := make([]driverk.Element, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		elements = append(elements, newElement(t, id))
	}
	return elements, nil
}

// documentNodeID of the top document, refreshed after the document was invalidated
func (t *Tab) documentNodeID(ctx context.Context) (int, error) {
	if id, ok := t.topNodeID.Load().(int); ok && id != 0 {
		return id, nil
	}
	if err := t.ready(ctx); err != nil {
		return 0, err
	}
	doc, err := t.t.DOM.GetDocument(-1, false)
	if err != nil {
		return 0, errors.Wrap(err, "getting document")
	}
	t.topNodeID.Store(doc.NodeId)
	return doc.NodeId, nil
}

func (t *Tab) invalidateDocument() {
	t.topNodeID.Store(0)
}

// ready fails fast if the tab is gone or the caller gave up
func (t *Tab) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if atomic.LoadInt32(&t.closed) == 1 {
		return driverk.ErrTabClosing
	}
	return nil
}

// callFunctionOn the remote object for nodeID, returning the by value result
func (t *Tab) callFunctionOn(ctx context.Context, nodeID int, function string) (interface{}, error) {
	if err := t.ready(ctx); err != nil {
		return nil, err
	}
	obj, err := t.t.DOM.ResolveNodeWithParams(&gcdapi.DOMResolveNodeParams{NodeId: nodeID, ObjectGroup: "driverhelpers"})
	if err != nil {
		return nil, err
	}
	defer t.t.Runtime.ReleaseObject(obj.ObjectId)

	params := &gcdapi.RuntimeCallFunctionOnParams{
		FunctionDeclaration: function,
		ObjectId:            obj.ObjectId,
		ReturnByValue:       true,
		Silent:              true,
	}
	r, exp, err := t.t.Runtime.CallFunctionOnWithParams(params)
	if err != nil {
		return nil, err
	}
	if exp != nil {
		return nil, &ScriptEvaluationErr{Message: fmt.Sprintf("node %d", nodeID), ExceptionText: exp.Text, ExceptionDetails: exp}
	}
	return r.Value, nil
}

func (t *Tab) subscribeBrowserEvents(ctx context.Context) {
	t.t.DOM.Enable()
	t.t.Inspector.Enable()
	t.t.Page.Enable()
	t.t.Security.Enable()
	t.t.Network.EnableWithParams(&gcdapi.NetworkEnableParams{
		MaxTotalBufferSize:    maximumTotalBufferSize,
		MaxResourceBufferSize: maximumResourceBufferSize,
		MaxPostDataSize:       maximumPostDataSize,
	})

	t.t.Security.SetOverrideCertificateErrors(true)

	t.t.Subscribe("Security.certificateError", func(target *gcd.ChromeTarget, payload []byte) {
		resp := &gcdapi.SecurityCertificateErrorEvent{}
		err := json.Unmarshal(payload, resp)
		if err != nil {
			return
		}
		log.Ctx(ctx).Warn().Str("type", resp.Params.ErrorType).Msg("handling certificate error")
		p := &gcdapi.SecurityHandleCertificateErrorParams{
			EventId: resp.Params.EventId,
			Action:  "continue",
		}
		t.t.Security.HandleCertificateErrorWithParams(p)
	})

	t.t.Subscribe("Inspector.targetCrashed", func(target *gcd.ChromeTarget, payload []byte) {
		log.Ctx(ctx).Warn().Msgf("tab crashed: %s", string(payload))
		t.crashed("crashed")
	})

	t.t.Subscribe("Inspector.detached", func(target *gcd.ChromeTarget, payload []byte) {
		header := &gcdapi.InspectorDetachedEvent{}
		err := json.Unmarshal(payload, header)
		reason := "detached"

		if err == nil {
			reason = header.Params.Reason
		}
		t.crashed(reason)
	})

	t.t.Subscribe("Page.loadEventFired", func(target *gcd.ChromeTarget, payload []byte) {
		select {
		case t.navigationCh <- struct{}{}:
		default:
		}
	})

	t.t.Subscribe("Network.requestWillBeSent", func(target *gcd.ChromeTarget, payload []byte) {
		t.activity.IncRequest()
	})
	t.t.Subscribe("Network.loadingFinished", func(target *gcd.ChromeTarget, payload []byte) {
		t.activity.DecRequest()
	})
	t.t.Subscribe("Network.loadingFailed", func(target *gcd.ChromeTarget, payload []byte) {
		t.activity.DecRequest()
	})

	t.t.Subscribe("DOM.documentUpdated", func(target *gcd.ChromeTarget, payload []byte) {
		t.invalidateDocument()
		t.activity.NodeChanged()
	})
	for _, evt := range []string{
		"DOM.setChildNodes",
		"DOM.attributeModified",
		"DOM.attributeRemoved",
		"DOM.characterDataModified",
		"DOM.childNodeCountUpdated",
		"DOM.childNodeInserted",
		"DOM.childNodeRemoved",
	} {
		t.t.Subscribe(evt, t.domUpdated)
	}
}

func (t *Tab) domUpdated(target *gcd.ChromeTarget, payload []byte) {
	t.activity.NodeChanged()
}

func (t *Tab) crashed(reason string) {
	if t.disconnected != nil {
		t.disconnected(t, reason)
	}
	select {
	case t.crashedCh <- reason:
	case <-t.exitCh:
	default:
	}
}
