package events

import (
	"testing"
	"time"
)

func TestTransactionRecordedMessageRoundTrip(t *testing.T) {
	msg := NewTransactionRecordedMessage(42)
	if msg.ID != 42 {
		t.Fatalf("expected id 42, got %d", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != msg.ID {
		t.Fatalf("expected id %d, got %d", msg.ID, got.ID)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestTransactionRecordedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TransactionRecordedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
