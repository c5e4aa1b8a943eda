package database

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeCompanyName(t *testing.T) {
	cases := map[string]string{
		"Acme":            "acme",
		"  Acme Corp  ":   "acme_corp",
		"BIG Realty Pune": "big_realty_pune",
	}
	for in, want := range cases {
		if got := normalizeCompanyName(in); got != want {
			t.Errorf("normalizeCompanyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	oid := primitive.NewObjectID()

	doc := bson.M{
		"name":      "Tower A",
		"updatedAt": primitive.NewDateTimeFromTime(ts),
		"owner":     oid,
		"client": bson.M{
			"phones": bson.A{"123", "456"},
		},
		"history": bson.D{{Key: "stage", Value: "Negotiation"}},
	}

	normalized := normalizeValue(doc).(map[string]any)

	if normalized["name"] != "Tower A" {
		t.Errorf("plain string changed: %v", normalized["name"])
	}
	if got, ok := normalized["updatedAt"].(time.Time); !ok || !got.Equal(ts) {
		t.Errorf("DateTime not converted: %v", normalized["updatedAt"])
	}
	if normalized["owner"] != oid.Hex() {
		t.Errorf("ObjectID not converted: %v", normalized["owner"])
	}

	client, ok := normalized["client"].(map[string]any)
	if !ok {
		t.Fatalf("nested bson.M not converted: %T", normalized["client"])
	}
	phones, ok := client["phones"].([]any)
	if !ok || len(phones) != 2 || phones[0] != "123" {
		t.Errorf("bson.A not converted: %v", client["phones"])
	}

	history, ok := normalized["history"].(map[string]any)
	if !ok || history["stage"] != "Negotiation" {
		t.Errorf("bson.D not converted: %v", normalized["history"])
	}
}

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()
	if got := documentID(oid); got != oid.Hex() {
		t.Errorf("documentID(ObjectID) = %q", got)
	}
	if got := documentID("plain-id"); got != "plain-id" {
		t.Errorf("documentID(string) = %q", got)
	}
}
