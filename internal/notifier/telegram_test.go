package notifier

import (
	"context"
	"testing"
)

func TestTelegramNotifier_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		token string
		chat  string
		want  bool
	}{
		{"fully configured", "token", "123", true},
		{"missing token", "", "123", false},
		{"missing chat", "token", "", false},
		{"unconfigured", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewTelegramNotifier(tt.token, tt.chat, "")
			if got := n.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSendWithRetry_DisabledIsNoop(t *testing.T) {
	n := NewTelegramNotifier("", "", "")
	if err := n.SendWithRetry(context.Background(), "hello"); err != nil {
		t.Errorf("disabled notifier must be a no-op, got %v", err)
	}
}
