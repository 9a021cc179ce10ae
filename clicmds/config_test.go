package clicmds_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"gitlab.com/driverhelpers/clicmds"
)

const signupConfig = `
url = "http://localhost:8080/signup.html"
driver = "chromedp"
submit = "#signup-btn"
avoid_stale = true

[form]
"#email" = "user@example.com"
"input[name='gender']" = "M"
"input[name='friends']" = ["Abed", "Troy"]

[[find]]
collection = "div.people > .person"
criteria = ".name"
text = "Jeff Winger"
click = true
`

func TestDecodeConfig(t *testing.T) {
	cfg, err := clicmds.DecodeConfig(signupConfig)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}

	if cfg.Driver != clicmds.DriverChromedp || cfg.Submit != "#signup-btn" || !cfg.AvoidStale {
		t.Fatalf("unexpected config: %s\n", spew.Sdump(cfg))
	}
	if cfg.ElementTimeoutMs != 5000 || cfg.StaleTimeoutMs != 3000 {
		t.Fatalf("expected default timeouts: %s\n", spew.Sdump(cfg))
	}
	if cfg.Form["#email"] != "user@example.com" {
		t.Fatalf("expected email in form: %s\n", spew.Sdump(cfg.Form))
	}
	friends, ok := cfg.Form["input[name='friends']"].([]interface{})
	if !ok || len(friends) != 2 || friends[1] != "Troy" {
		t.Fatalf("expected friends list: %s\n", spew.Sdump(cfg.Form))
	}
	if len(cfg.Find) != 1 || cfg.Find[0].Text != "Jeff Winger" || !cfg.Find[0].Click {
		t.Fatalf("expected one find: %s\n", spew.Sdump(cfg.Find))
	}
}

func TestDecodeConfigInvalid(t *testing.T) {
	invalid := []string{
		`driver = "netscape"`,
		`driver = "selenium"`,
		"[[find]]\ntext = \"x\"",
		`url = `,
	}
	for _, data := range invalid {
		if _, err := clicmds.DecodeConfig(data); err == nil {
			t.Fatalf("expected %q to be rejected\n", data)
		}
	}
}
