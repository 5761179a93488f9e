package keyboard

import "testing"

func TestReplyButtonsSkipsEmptyRows(t *testing.T) {
	markup := ReplyButtons([]string{"/next", "/end"}, nil, []string{"/interview"})

	if !markup.ResizeKeyboard {
		t.Fatal("expected resizable keyboard")
	}
	if len(markup.ReplyKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.ReplyKeyboard))
	}
	if got := markup.ReplyKeyboard[0][1].Text; got != "/end" {
		t.Fatalf("button = %q, want /end", got)
	}
}

func TestRemoveKeyboard(t *testing.T) {
	if !RemoveKeyboard().RemoveKeyboard {
		t.Fatal("expected remove flag")
	}
}
