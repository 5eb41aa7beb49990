package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "DONE", "REMINDER_DUE"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("%s parsed to %s", s, got)
		}
	}

	for _, s := range []string{"", "pending", "ARCHIVED"} {
		_, err := ParseStatus(s)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%q: expected ValidationError, got %v", s, err)
		}
	}
}
