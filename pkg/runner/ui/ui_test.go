package ui

import (
	"context"
	"testing"
)

func TestDoRequiresSite(t *testing.T) {
	u := UI{}
	if err := u.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a site")
	}
}
