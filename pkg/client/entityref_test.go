package client

import (
	"encoding/json"
	"testing"
)

func TestEntityRef_DecodeHexID(t *testing.T) {
	var ref EntityRef[Volunteer]
	if err := json.Unmarshal([]byte(`"64b0c0ffee0000000000aaaa"`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ref.ID != "64b0c0ffee0000000000aaaa" {
		t.Errorf("id: got %q", ref.ID)
	}
	if ref.IsExpanded() {
		t.Error("bare id should not be expanded")
	}
}

func TestEntityRef_DecodeDocument(t *testing.T) {
	raw := `{"id":"64b0c0ffee0000000000aaaa","name":"Asha Patel","email":"asha@example.com","hours":12}`
	var ref EntityRef[Volunteer]
	if err := json.Unmarshal([]byte(raw), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !ref.IsExpanded() {
		t.Fatal("document should be expanded")
	}
	if ref.ID != "64b0c0ffee0000000000aaaa" {
		t.Errorf("id not pulled from document: got %q", ref.ID)
	}
	if ref.Expanded.Name != "Asha Patel" || ref.Expanded.Hours != 12 {
		t.Errorf("document: got %+v", ref.Expanded)
	}
}

func TestEntityRef_DecodeNull(t *testing.T) {
	ref := EntityRef[Event]{ID: "stale"}
	if err := json.Unmarshal([]byte(`null`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ref.ID != "" || ref.IsExpanded() {
		t.Errorf("null should reset the ref: %+v", ref)
	}
}

func TestEntityRef_DecodeGarbage(t *testing.T) {
	var ref EntityRef[Event]
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Error("expected an error for a non-string non-object value")
	}
}

func TestEntityRef_MarshalWritesID(t *testing.T) {
	ref := EntityRef[Volunteer]{
		ID:       "64b0c0ffee0000000000aaaa",
		Expanded: &Volunteer{Name: "Asha"},
	}
	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"64b0c0ffee0000000000aaaa"` {
		t.Errorf("marshal: got %s", data)
	}
}
