package cdpdriver_test

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/exec"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/driverhelpers/cdpdriver"
	"gitlab.com/driverhelpers/driverk"
	"gitlab.com/driverhelpers/flow"
	"gitlab.com/driverhelpers/helpers"
)

const peoplePage = `<html><body>
<select id="country"><option value="JP">Japan</option><option value="US">United States</option></select>
<input type="text" id="q" name="q">
<div class="people">
	<div class="person"><p class="name">Annie Edison</p></div>
	<div class="person"><p class="name">Jeff Winger</p></div>
</div>
</body></html>`

func hasChrome() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func testServer() (string, *http.Server) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/people", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte(peoplePage))
	})
	testListener, _ := net.Listen("tcp", ":0")
	_, testServerPort, _ := net.SplitHostPort(testListener.Addr().String())
	srv := &http.Server{
		Addr:    testListener.Addr().String(),
		Handler: router,
	}
	go func() {
		if err := srv.Serve(testListener); err != http.ErrServerClosed {
			log.Fatalf("Serve(): %s", err)
		}
	}()
	return testServerPort, srv
}

func TestDriver(t *testing.T) {
	if !hasChrome() {
		t.Skip("chrome not found")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*60)
	defer cancel()

	p, srv := testServer()
	defer srv.Shutdown(ctx)

	d, err := cdpdriver.NewLocal(ctx, "")
	if err != nil {
		t.Fatalf("error starting chrome: %s\n", err)
	}
	defer d.Close()

	if err := d.Navigate(ctx, fmt.Sprintf("http://localhost:%s/people", p)); err != nil {
		t.Fatalf("error navigating: %s\n", err)
	}

	if _, err := d.FindElement(ctx, driverk.ID("missing")); !driverk.IsNotFound(err) {
		t.Fatalf("expected not found, got: %v\n", err)
	}

	f := flow.New()
	defer f.Close()
	h := helpers.New(d, f)

	err = h.PopulateElements(ctx, helpers.FormValues{
		"#country": "US",
		"#q":       "greendale",
	})
	if err != nil {
		t.Fatalf("error populating: %s\n", err)
	}

	q, err := h.ByID(ctx, "q")
	if err != nil {
		t.Fatalf("error finding q: %s\n", err)
	}
	if tag, _ := q.TagName(ctx); tag != "input" {
		t.Fatalf("expected input got %s\n", tag)
	}

	person, err := h.FindElementInCollectionByText(driverk.CSS(".people > .person"), driverk.ClassName("name"), "Jeff Winger")(ctx)
	if err != nil {
		t.Fatalf("error searching: %s\n", err)
	}
	if _, err := person.FindElement(ctx, driverk.XPath("./p")); err != cdpdriver.ErrXPathScoped {
		t.Fatalf("expected scoped xpath to be refused, got: %v\n", err)
	}

	names, err := d.FindElements(ctx, driverk.XPath("//p[@class='name']"))
	if err != nil || len(names) != 2 {
		t.Fatalf("expected 2 names by xpath got %d (%v)\n", len(names), err)
	}
}
