package anomaly

import (
	"context"
	"runtime"
	"testing"
)

func TestParseResult_Valid(t *testing.T) {
	status, err := ParseResult([]byte(`{"anomalyStatus": "Normal"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "Normal" {
		t.Errorf("expected Normal, got %s", status)
	}
}

func TestParseResult_Malformed(t *testing.T) {
	_, err := ParseResult([]byte("Traceback (most recent call last):"))
	if err == nil {
		t.Fatal("expected error for malformed output")
	}
}

func TestParseResult_EmptyStatus(t *testing.T) {
	_, err := ParseResult([]byte(`{"anomalyStatus": ""}`))
	if err == nil {
		t.Fatal("expected error for empty status")
	}
}

func TestClassify_RunsSubprocess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix echo binary")
	}

	// echo prints its argument, standing in for the real classifier script.
	client := NewClient("echo", `{"anomalyStatus": "Normal"}`, 5)

	status, err := client.Classify(context.Background(), "customer-1", 150, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "Normal" {
		t.Errorf("expected Normal, got %s", status)
	}
}

func TestClassify_MissingBinary(t *testing.T) {
	client := NewClient("definitely-not-a-real-binary", "script.py", 5)

	_, err := client.Classify(context.Background(), "customer-1", 150, 30)
	if err == nil {
		t.Fatal("expected error for missing classifier binary")
	}
}
