package database

import "testing"

func TestNewRedisRequiresURL(t *testing.T) {
	client, err := NewRedis("")
	if err == nil {
		t.Fatal("expected an error for an empty redis url")
	}
	if client != nil {
		t.Fatal("expected no client for an empty redis url")
	}
}

func TestNewRedisRejectsMalformedURL(t *testing.T) {
	if _, err := NewRedis("not-a-redis-url"); err == nil {
		t.Fatal("expected an error for a malformed redis url")
	}
}
