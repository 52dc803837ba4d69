package db

import (
	"net/url"
	"testing"

	"restaurant-backend/config"
)

func TestConnStringEscapesCredentials(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "restaurant",
		Password: "p@ss:w/rd",
		Database: "restaurant",
	}

	s := connString(cfg)
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("conn string does not parse: %v", err)
	}
	if u.Host != "localhost:5432" {
		t.Errorf("host = %q, want localhost:5432", u.Host)
	}
	if got := u.User.Username(); got != "restaurant" {
		t.Errorf("user = %q, want restaurant", got)
	}
	pw, _ := u.User.Password()
	if pw != "p@ss:w/rd" {
		t.Errorf("password = %q, want the original round-tripped", pw)
	}
	if u.Path != "/restaurant" {
		t.Errorf("path = %q, want /restaurant", u.Path)
	}
}
