package postdesk

import (
	"testing"
	"time"

	"github.com/louisbranch/postdesk/internal/services/postdesk/i18n"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"golang.org/x/text/language"
)

func TestFormatDate(t *testing.T) {
	pt := i18n.Printer(language.MustParse("pt-BR"))
	en := i18n.Printer(language.MustParse("en-US"))
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		en   bool
		want string
	}{
		{name: "zero", want: "-"},
		{name: "just now", t: now.Add(-30 * time.Second), want: "Agora mesmo"},
		{name: "future", t: now.Add(time.Minute), want: "Agora mesmo"},
		{name: "minutes", t: now.Add(-3 * time.Minute), want: "3m atrás"},
		{name: "hours", t: now.Add(-5 * time.Hour), want: "5h atrás"},
		{name: "days", t: now.Add(-2 * 24 * time.Hour), want: "2d atrás"},
		{name: "threshold day is relative", t: now.Add(-7 * 24 * time.Hour), want: "7d atrás"},
		{name: "absolute", t: time.Date(2026, 10, 7, 9, 30, 0, 0, time.UTC), want: "07/10/2026, 09:30"},
		{name: "absolute in zone", t: time.Date(2026, 10, 7, 9, 30, 0, 0, time.UTC), loc: saoPaulo, want: "07/10/2026, 06:30"},
		{name: "english", t: now.Add(-3 * time.Minute), en: true, want: "3m ago"},
		{name: "english absolute", t: time.Date(2026, 10, 7, 21, 30, 0, 0, time.UTC), en: true, want: "10/07/2026, 09:30 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printer := pt
			if tt.en {
				printer = en
			}
			if got := FormatDate(now, tt.t, 7, tt.loc, printer); got != tt.want {
				t.Fatalf("FormatDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text  string
		limit int
		want  string
	}{
		{text: "abcde fghij", limit: 8, want: "abcde..."},
		{text: "curto", limit: 100, want: "curto"},
		{text: "abcdefghij", limit: 4, want: "abcd..."},
		{text: " abcdef", limit: 4, want: " abc..."},
		{text: "ação rápida demais", limit: 10, want: "ação..."},
	}
	for _, tt := range tests {
		if got := TruncateText(tt.text, tt.limit); got != tt.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
		}
	}
}

func TestEnumLabelsAreTranslated(t *testing.T) {
	pt := i18n.Printer(language.MustParse("pt-BR"))
	for _, status := range post.StatusValues() {
		if got := formatStatus(status, pt).Label; got == "" || got == status.Style().Label.Key {
			t.Errorf("status %s has no translation", status)
		}
	}
	for _, goal := range post.GoalValues() {
		if got := formatLabel(goal.Label(), pt); got == goal.Label().Key {
			t.Errorf("goal %s has no translation", goal)
		}
	}
	for _, tone := range post.ToneValues() {
		if got := formatLabel(tone.Label(), pt); got == tone.Label().Key {
			t.Errorf("tone %s has no translation", tone)
		}
	}
	for _, format := range post.FormatValues() {
		if got := formatLabel(format.Label(), pt); got == format.Label().Key {
			t.Errorf("format %s has no translation", format)
		}
	}
	for _, provider := range post.ProviderValues() {
		if got := formatLabel(provider.Label(), pt); got == provider.Label().Key {
			t.Errorf("provider %s has no translation", provider)
		}
	}
}

func TestUnknownStatusBadge(t *testing.T) {
	pt := i18n.Printer(language.MustParse("pt-BR"))
	badge := formatStatus(post.Status("archived"), pt)
	if badge.Label != "archived" || badge.Icon != "fa-circle" || badge.Color != "bg-gray-100 text-gray-700" {
		t.Fatalf("badge = %+v", badge)
	}
	if got := formatLabel(post.Goal("viral").Label(), pt); got != "viral" {
		t.Fatalf("unknown goal label = %q", got)
	}
}

func TestBuildStatusOptionsKeepsUnknownStatus(t *testing.T) {
	pt := i18n.Printer(language.MustParse("pt-BR"))
	options := buildStatusOptions(post.Status("archived"), pt)
	if len(options) != len(post.StatusValues())+1 || options[0].Value != "archived" || !options[0].Selected {
		t.Fatalf("options = %+v", options)
	}
}
