package vision

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseExtraction_PlainJSON(t *testing.T) {
	result, err := ParseExtraction(`{"meterNo": "X123", "kilowatt": 120.5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MeterNo == nil || *result.MeterNo != "X123" {
		t.Errorf("expected meterNo X123, got %v", result.MeterNo)
	}
	if result.Kilowatt == nil || *result.Kilowatt != 120.5 {
		t.Errorf("expected kilowatt 120.5, got %v", result.Kilowatt)
	}
}

func TestParseExtraction_StripsCodeFences(t *testing.T) {
	text := "```json\n{\"meterNo\": \"X123\", \"kilowatt\": 42}\n```"
	result, err := ParseExtraction(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kilowatt == nil || *result.Kilowatt != 42 {
		t.Errorf("expected kilowatt 42, got %v", result.Kilowatt)
	}
}

func TestParseExtraction_NullFields(t *testing.T) {
	result, err := ParseExtraction(`{"meterNo": null, "kilowatt": null}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MeterNo != nil {
		t.Errorf("expected nil meterNo, got %v", *result.MeterNo)
	}
	if result.Kilowatt != nil {
		t.Errorf("expected nil kilowatt, got %v", *result.Kilowatt)
	}
}

func TestParseExtraction_NotJSON(t *testing.T) {
	_, err := ParseExtraction("the reading appears to be 120 kWh")
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestParseExtraction_EmptyText(t *testing.T) {
	_, err := ParseExtraction("   ")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestParseExtraction_QuotedKilowattRejected(t *testing.T) {
	_, err := ParseExtraction(`{"meterNo": "X123", "kilowatt": "120"}`)
	if err == nil {
		t.Fatal("expected error for kilowatt wrapped in quotes")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestParseExtraction_ToleratesExtraFields(t *testing.T) {
	result, err := ParseExtraction(`{"meterNo": "X123", "kilowatt": 120, "confidence": 0.97}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MeterNo == nil || *result.MeterNo != "X123" {
		t.Errorf("expected meterNo X123, got %v", result.MeterNo)
	}
	if result.Kilowatt == nil || *result.Kilowatt != 120 {
		t.Errorf("expected kilowatt 120, got %v", result.Kilowatt)
	}
}

func TestExtract_EmptyChoicesIsUnreadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	extractor := NewExtractor("test-key", srv.URL, "gpt-4o-mini")

	_, err := extractor.Extract(context.Background(), "aGk=", "image/jpeg")
	if err == nil {
		t.Fatal("expected error when the model returns no choices")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestParseExtraction_NumericMeterNoRejected(t *testing.T) {
	_, err := ParseExtraction(`{"meterNo": 123, "kilowatt": 120}`)
	if err == nil {
		t.Fatal("expected error for numeric meterNo")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}
