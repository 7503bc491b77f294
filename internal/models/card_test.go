package models

import (
	"encoding/json"
	"testing"
)

func TestCard_Validate(t *testing.T) {
	c := Card{ID: "mantis", Name: "Mantis"}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid card rejected: %v", err)
	}
	c.ID = ""
	if err := c.Validate(); err == nil {
		t.Fatal("card without id should fail validation")
	}
	c = Card{ID: "x", Name: "X", Cost: -1}
	if err := c.Validate(); err == nil {
		t.Fatal("negative cost should fail validation")
	}
}

func TestCard_ImageName(t *testing.T) {
	c := Card{Name: "Lost Man", Images: []CardImage{{Name: "lostman"}, {Name: ""}}}
	if got := c.ImageName(0); got != "lostman" {
		t.Errorf("ImageName(0) = %q", got)
	}
	if got := c.ImageName(1); got != "Lost Man" {
		t.Errorf("ImageName(1) = %q, want card name fallback", got)
	}
	if got := c.ImageName(7); got != "Lost Man" {
		t.Errorf("ImageName(7) = %q, want card name fallback", got)
	}
}

func TestCard_DecodeDescription(t *testing.T) {
	data := []byte(`{"id":"a","name":"A","type":"command","description":[{"String":"Hi"},"LineBreak"],"flavor_text":"f"}`)
	var c Card
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(c.Description) != 2 {
		t.Fatalf("description len = %d, want 2", len(c.Description))
	}
	if !c.IsCommand() || c.IsBloodFlask() {
		t.Errorf("type predicates wrong for %q", c.Type)
	}
}

func TestQueryResult_JSON(t *testing.T) {
	data, err := json.Marshal(NewCardList("all cards", nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"CardList","query_text":"all cards","content":[]}` {
		t.Errorf("card list json = %s", data)
	}
	data, _ = json.Marshal(NewQueryError("bad query"))
	if string(data) != `{"type":"Error","message":"bad query"}` {
		t.Errorf("error json = %s", data)
	}
}

func TestCard_CostAndStatsLines(t *testing.T) {
	c := &Card{Type: "creature", Cost: 3, Health: 2, Defense: 1, Power: 4}
	if got := c.CostLine(); got != "Creature :: 3 Blood" {
		t.Errorf("CostLine = %q", got)
	}
	if got := c.StatsLine(); got != "2/1/4" {
		t.Errorf("StatsLine = %q", got)
	}

	flask := &Card{Type: "blood flask", Cost: 2}
	if got := flask.CostLine(); got != "Blood flask" {
		t.Errorf("flask CostLine = %q", got)
	}
}

func TestTitlecase(t *testing.T) {
	for in, want := range map[string]string{"creature": "Creature", "": "", "1st": "1st", "Äther": "Äther"} {
		if got := Titlecase(in); got != want {
			t.Errorf("Titlecase(%q) = %q, want %q", in, got, want)
		}
	}
}
