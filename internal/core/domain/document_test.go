package domain

import (
	"encoding/json"
	"testing"
)

func TestKWh_DecodesNumbersAndStrings(t *testing.T) {
	raw := `[{"id":"a","houseId":"h","date":"2024-01-01","kwh":"12.5","note":""},
		{"id":"b","houseId":"h","date":"2024-01-02","kwh":3,"note":""},
		{"id":"c","houseId":"h","date":"2024-01-03","kwh":"","note":""}]`

	var records []Consumption
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []KWh{12.5, 3, 0}
	for i, r := range records {
		if r.KWh != want[i] {
			t.Fatalf("record %d: expected %v, got %v", i, want[i], r.KWh)
		}
	}

	out, err := json.Marshal(records[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if back["kwh"] != 12.5 {
		t.Fatalf("expected kwh written as a number, got %v", back["kwh"])
	}
}

func TestKWh_RejectsGarbage(t *testing.T) {
	var k KWh
	if err := json.Unmarshal([]byte(`"lots"`), &k); err == nil {
		t.Fatalf("expected error for non-numeric reading")
	}
}

func TestDocument_RemoveHouseCascades(t *testing.T) {
	d := &Document{
		Houses: []House{{ID: "h1"}, {ID: "h2"}},
		Consumptions: []Consumption{
			{ID: "r1", HouseID: "h1"},
			{ID: "r2", HouseID: "h2"},
			{ID: "r3", HouseID: "h1"},
		},
	}

	removed, ok := d.RemoveHouse("h1")
	if !ok || removed != 2 {
		t.Fatalf("expected 2 records removed, got %d (ok=%v)", removed, ok)
	}
	if len(d.Houses) != 1 || d.Houses[0].ID != "h2" {
		t.Fatalf("unexpected houses: %+v", d.Houses)
	}
	if len(d.Consumptions) != 1 || d.Consumptions[0].ID != "r2" {
		t.Fatalf("unexpected consumptions: %+v", d.Consumptions)
	}
}

func TestDocument_RemoveUserLeavesClients(t *testing.T) {
	d := &Document{
		Users:   []User{{ID: "u1"}, {ID: "u2"}},
		Clients: []Client{{ID: "c1", UserID: "u2"}},
	}

	if !d.RemoveUser("u2") {
		t.Fatalf("expected user removed")
	}
	if len(d.Clients) != 1 {
		t.Fatalf("expected client to remain, got %+v", d.Clients)
	}
	if d.RemoveUser("u2") {
		t.Fatalf("second removal should report false")
	}
}

func TestDocument_UserByEmailIgnoresCase(t *testing.T) {
	d := &Document{Users: []User{{ID: "u1", Email: "Admin@App.com"}}}
	if _, ok := d.UserByEmail("admin@app.COM"); !ok {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2024-02-29") {
		t.Fatalf("leap day should be valid")
	}
	if ValidDate("2023-02-29") || ValidDate("29/02/2024") || ValidDate("") {
		t.Fatalf("invalid dates accepted")
	}
}
