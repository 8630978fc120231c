package resend

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	html, err := render([]string{"guitar", "<script>"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "end in 3 hours") {
		t.Fatalf("missing hours: %s", html)
	}
	if !strings.Contains(html, "<li>guitar</li>") {
		t.Fatalf("missing habit: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("habit titles must be escaped: %s", html)
	}
}

func TestSubject(t *testing.T) {
	if got := subject([]string{"guitar"}); got != "Your guitar streak ends at midnight" {
		t.Errorf("got %q", got)
	}
	if got := subject([]string{"guitar", "run"}); got != "2 habit streaks end at midnight" {
		t.Errorf("got %q", got)
	}
}
