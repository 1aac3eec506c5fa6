package types

import "testing"

func TestSignalKind(t *testing.T) {
	tests := []struct {
		k      SignalKind
		want   string
		valid  bool
		isSend bool
	}{
		{SignalEnqSend, "enq_send", true, true},
		{SignalDirectSend, "direct_send", true, true},
		{SignalResend, "resend", true, false},
		{SignalAck, "ack", true, false},
		{SignalKind(-1), "unknown", false, false},
		{SignalKind(99), "unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("SignalKind(%d).String() = %q, want %q", tt.k, got, tt.want)
			}
			if got := tt.k.Valid(); got != tt.valid {
				t.Errorf("SignalKind(%d).Valid() = %v, want %v", tt.k, got, tt.valid)
			}
			if got := tt.k.IsSend(); got != tt.isSend {
				t.Errorf("SignalKind(%d).IsSend() = %v, want %v", tt.k, got, tt.isSend)
			}
		})
	}
}

func TestMsgKind(t *testing.T) {
	tests := []struct {
		k    MsgKind
		want string
	}{
		{MsgAcked, "acked"},
		{MsgUnacked, "unacked"},
		{MsgKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("MsgKind(%d).String() = %q, want %q", tt.k, got, tt.want)
			}
		})
	}
}

func TestMsgState(t *testing.T) {
	tests := []struct {
		s        MsgState
		want     string
		inFlight bool
	}{
		{MsgStateNew, "new", false},
		{MsgStateSending, "sending", true},
		{MsgStateWaitingAck, "waiting_ack", true},
		{MsgStateAck, "ack", false},
		{MsgStateNack, "nack", false},
		{MsgState(99), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("MsgState(%d).String() = %q, want %q", tt.s, got, tt.want)
			}
			if got := tt.s.InFlight(); got != tt.inFlight {
				t.Errorf("MsgState(%d).InFlight() = %v, want %v", tt.s, got, tt.inFlight)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		a          Address
		str        string
		unassigned bool
		unicast    bool
		virtual    bool
		group      bool
	}{
		{AddrUnassigned, "0x0000", true, false, false, false},
		{Address(0x0001), "0x0001", false, true, false, false},
		{Address(0x7FFF), "0x7fff", false, true, false, false},
		{Address(0x8000), "0x8000", false, false, true, false},
		{Address(0xBFFF), "0xbfff", false, false, true, false},
		{Address(0xC000), "0xc000", false, false, false, true},
		{AddrAllNodes, "0xffff", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.a.String(); got != tt.str {
				t.Errorf("Address.String() = %q, want %q", got, tt.str)
			}
			if got := tt.a.IsUnassigned(); got != tt.unassigned {
				t.Errorf("IsUnassigned() = %v, want %v", got, tt.unassigned)
			}
			if got := tt.a.IsUnicast(); got != tt.unicast {
				t.Errorf("IsUnicast() = %v, want %v", got, tt.unicast)
			}
			if got := tt.a.IsVirtual(); got != tt.virtual {
				t.Errorf("IsVirtual() = %v, want %v", got, tt.virtual)
			}
			if got := tt.a.IsGroup(); got != tt.group {
				t.Errorf("IsGroup() = %v, want %v", got, tt.group)
			}
		})
	}
}
